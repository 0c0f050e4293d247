package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"

	v1 "github.com/foerdercheck/backend/internal/controllers/v1"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/foerdercheck/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestOptionsCalculation() {
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/applications/%s/calculation", uuid.New()), nil)

	suite.Assert().Equal(http.StatusNoContent, r.Code)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetCalculation() {
	application := suite.createTestApplication(testApplication("WFB-2024-01410"))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/calculation", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CalculationResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("2100", response.Data.TotalIncome.String())
	suite.Assert().Equal("150", response.Data.TotalExpenses.String())
	suite.Assert().Equal("1950", response.Data.AvailableIncome.String())
	suite.Assert().Empty(response.Data.Errors)
	suite.Assert().Len(response.Data.Calculations, 8)
}

func (suite *TestSuiteStandard) TestGetCalculationUsesExtractedValues() {
	structure := `{
		"main_applicant": {
			"lohn_gehaltsbescheinigungen": {
				"numberOfFiles": 1,
				"relevantValues": ["monthly_net_salary"],
				"gehalt.pdf": {
					"filePath": "applicant/gehalt.pdf",
					"confidence": "0.93",
					"monthly_net_salary": {"netValue": "2.350,00", "confidence": "0.93"}
				}
			}
		}
	}`

	application := suite.createTestApplication(models.Application{
		Reference:           "WFB-2024-01411",
		Profile:             json.RawMessage(`{"firstName": "Anna", "lastName": "Muster", "adultCount": 1}`),
		Financials:          json.RawMessage(`{"hasSalaryIncome": true, "monthlyNetSalary": "2.100,00"}`),
		ExtractionStructure: json.RawMessage(structure),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/calculation", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CalculationResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("2350", response.Data.TotalIncome.String())

	salary := response.Data.Calculations[1]
	suite.Require().NotNil(salary.Value)
	suite.Assert().Equal(reconcile.SourceExtracted, salary.Value.Source)
	suite.Assert().Equal([]string{"applicant_lohn_gehaltsbescheinigungen_0"}, salary.Value.DocumentIDs)
}

func (suite *TestSuiteStandard) TestGetCalculationMissingRecordsReported() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-01412"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/calculation", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CalculationResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Errors, 1)
	suite.Assert().Equal("Die Profildaten des Antrags wurden nicht gefunden. Die Einkommensberechnung ist nicht möglich.", response.Data.Errors[0])
	suite.Assert().Equal("0", response.Data.AvailableIncome.String())
}

func (suite *TestSuiteStandard) TestGetCalculationNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/calculation", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
