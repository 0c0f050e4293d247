package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/foerdercheck/backend/internal/controllers/v1"
	"github.com/foerdercheck/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) generateChecklist(applicationID uuid.UUID) v1.ChecklistResponse {
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/applications/%s/checklist", applicationID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ChecklistResponse
	suite.decodeResponse(&r, &response)

	return response
}

func (suite *TestSuiteStandard) TestOptionsChecklist() {
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/applications/%s/checklist", uuid.New()), nil)

	suite.Assert().Equal(http.StatusNoContent, r.Code)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsChecklistLine() {
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/applications/%s/checklist/lines/1", uuid.New()), nil)

	suite.Assert().Equal(http.StatusNoContent, r.Code)
	suite.Assert().Equal("OPTIONS, PATCH", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateChecklist() {
	application := suite.createTestApplication(testApplication("WFB-2024-01430"))

	response := suite.generateChecklist(application.ID)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.SystemPassed)
	suite.Assert().Equal("1950", response.Data.AvailableIncome.String())
	suite.Assert().False(response.Data.GeneratedAt.IsZero())
}

func (suite *TestSuiteStandard) TestGetChecklist() {
	application := suite.createTestApplication(testApplication("WFB-2024-01431"))
	suite.generateChecklist(application.ID)

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/checklist", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ChecklistResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("2100", response.Data.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestGetChecklistNotGenerated() {
	application := suite.createTestApplication(testApplication("WFB-2024-01432"))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/checklist", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.ChecklistResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("there is no checklist item matching your query", *response.Error)
}

func (suite *TestSuiteStandard) TestCreateChecklistReplacesPrevious() {
	application := suite.createTestApplication(testApplication("WFB-2024-01433"))

	first := suite.generateChecklist(application.ID)
	second := suite.generateChecklist(application.ID)

	suite.Require().NotNil(first.Data)
	suite.Require().NotNil(second.Data)
	suite.Assert().False(second.Data.GeneratedAt.Before(first.Data.GeneratedAt))
}

func (suite *TestSuiteStandard) TestUpdateChecklistLine() {
	application := suite.createTestApplication(testApplication("WFB-2024-01434"))
	suite.generateChecklist(application.ID)

	// Index 1 is the salary line of the only person.
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/applications/%s/checklist/lines/1", application.ID), v1.ChecklistLineUpdate{Value: decimal.NewFromInt(800)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ChecklistResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("800", response.Data.TotalIncome.String())
	suite.Assert().Equal("650", response.Data.AvailableIncome.String())
	suite.Assert().False(response.Data.SystemPassed)
	suite.Require().Len(response.Data.Errors, 1)
	suite.Assert().Equal("Das verfügbare Monatseinkommen unterschreitet das gesetzliche Mindesteinkommen um 340,00 €.", response.Data.Errors[0])

	// The edit is persisted.
	get := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s/checklist", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &get, http.StatusOK)

	var persisted v1.ChecklistResponse
	suite.decodeResponse(&get, &persisted)
	suite.Assert().Equal("800", persisted.Data.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestUpdateChecklistLineNotEditable() {
	application := suite.createTestApplication(testApplication("WFB-2024-01435"))
	suite.generateChecklist(application.ID)

	// Index 0 is the person header.
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/applications/%s/checklist/lines/0", application.ID), v1.ChecklistLineUpdate{Value: decimal.NewFromInt(1)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ChecklistResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("this calculation line cannot be edited", *response.Error)
}

func (suite *TestSuiteStandard) TestUpdateChecklistLineOutOfRange() {
	application := suite.createTestApplication(testApplication("WFB-2024-01436"))
	suite.generateChecklist(application.ID)

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/applications/%s/checklist/lines/99", application.ID), v1.ChecklistLineUpdate{Value: decimal.NewFromInt(1)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ChecklistResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("there is no calculation line with this index", *response.Error)
}

func (suite *TestSuiteStandard) TestUpdateChecklistLineNotGenerated() {
	application := suite.createTestApplication(testApplication("WFB-2024-01437"))

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/applications/%s/checklist/lines/1", application.ID), v1.ChecklistLineUpdate{Value: decimal.NewFromInt(1)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
