package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	v1 "github.com/foerdercheck/backend/internal/controllers/v1"
	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/test"
	"github.com/google/uuid"
)

const uploadedStructure = `{
	"main_applicant": {
		"lohn_gehaltsbescheinigungen": {
			"numberOfFiles": 1,
			"relevantValues": ["monthly_net_salary"],
			"gehalt.pdf": {
				"filePath": "applicant/gehalt.pdf",
				"uploadedAt": "2024-03-01T10:00:00Z"
			}
		}
	}
}`

func (suite *TestSuiteStandard) createUploadedApplication(reference string) models.Application {
	return suite.createTestApplication(models.Application{
		Reference:           reference,
		ExtractionStructure: json.RawMessage(uploadedStructure),
	})
}

func (suite *TestSuiteStandard) TestOptionsExtraction() {
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/applications/%s/extraction", uuid.New()), nil)

	suite.Assert().Equal(http.StatusNoContent, r.Code)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestRunExtraction() {
	v1.UseExtractionClient(scriptedClient{
		outcomes: map[string]extraction.Outcome{
			"applicant/gehalt.pdf": {
				Success:    true,
				Values:     map[string]any{"net_value": "2.100,00", "isMonthly": true},
				Confidence: 0.93,
				Method:     "document_ai",
			},
		},
	})
	defer v1.UseExtractionClient(nil)

	application := suite.createUploadedApplication("WFB-2024-01420")

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/applications/%s/extraction", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExtractionRunResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Success)
	suite.Assert().Equal(1, response.Data.ProcessedFiles)

	// The updated structure is persisted.
	structure, err := models.Store{}.ExtractionStructure(context.Background(), application.ID)
	suite.Require().NoError(err)

	group := structure["main_applicant"]["lohn_gehaltsbescheinigungen"]
	suite.Assert().True(group.ExtractionComplete)
	suite.Assert().Equal("2.100,00", group.Files["gehalt.pdf"].Values["monthly_net_salary"].Figure)
}

func (suite *TestSuiteStandard) TestRunExtractionPartialFailure() {
	v1.UseExtractionClient(scriptedClient{err: errors.New("service unavailable")})
	defer v1.UseExtractionClient(nil)

	application := suite.createUploadedApplication("WFB-2024-01421")

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/applications/%s/extraction", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExtractionRunResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().False(response.Data.Success)
	suite.Require().Len(response.Data.Errors, 1)
	suite.Assert().Contains(response.Data.Errors[0], "service unavailable")
}

func (suite *TestSuiteStandard) TestRunExtractionNoClient() {
	v1.UseExtractionClient(nil)

	application := suite.createUploadedApplication("WFB-2024-01422")

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/applications/%s/extraction", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.ExtractionRunResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("the document AI service is not configured", *response.Error)
}

func (suite *TestSuiteStandard) TestRunExtractionNotFound() {
	v1.UseExtractionClient(scriptedClient{})
	defer v1.UseExtractionClient(nil)

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/applications/%s/extraction", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
