package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/foerdercheck/backend/internal/controllers/v1"
	"github.com/foerdercheck/backend/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) createTestApplicationHTTP(create v1.ApplicationCreate, expectedStatus ...int) v1.ApplicationResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodPost, "/v1/applications", create)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var response v1.ApplicationResponse
	suite.decodeResponse(&r, &response)

	return response
}

func (suite *TestSuiteStandard) TestOptionsApplications() {
	r := test.Request(suite.T(), http.MethodOptions, "/v1/applications", nil)

	suite.Assert().Equal(http.StatusNoContent, r.Code)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestOptionsApplicationDetail() {
	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("/v1/applications/%s", uuid.New()), nil)

	suite.Assert().Equal(http.StatusNoContent, r.Code)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateApplication() {
	response := suite.createTestApplicationHTTP(v1.ApplicationCreate{
		Reference: "WFB-2024-01395",
		Profile:   []byte(`{"firstName": "Anna", "lastName": "Muster", "adultCount": 1}`),
	})

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("WFB-2024-01395", response.Data.Reference)
	suite.Assert().NotEqual(uuid.Nil, response.Data.ID)
	suite.Assert().JSONEq(`{"firstName": "Anna", "lastName": "Muster", "adultCount": 1}`, string(response.Data.Profile))
}

func (suite *TestSuiteStandard) TestCreateApplicationMissingReference() {
	response := suite.createTestApplicationHTTP(v1.ApplicationCreate{}, http.StatusBadRequest)

	suite.Require().NotNil(response.Error)
}

func (suite *TestSuiteStandard) TestCreateApplicationInvalidBlob() {
	response := suite.createTestApplicationHTTP(v1.ApplicationCreate{
		Reference: "WFB-2024-01396",
		Profile:   []byte(`{"adultCount": "zwei"}`),
	}, http.StatusBadRequest)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("one of the submitted data blobs is not valid for its record type", *response.Error)
}

func (suite *TestSuiteStandard) TestCreateApplicationBrokenJSON() {
	r := test.Request(suite.T(), http.MethodPost, "/v1/applications", `{ "reference": "WFB`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetApplication() {
	application := suite.createTestApplication(testApplication("WFB-2024-01400"))

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s", application.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ApplicationResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(application.ID, response.Data.ID)
	suite.Assert().Equal("WFB-2024-01400", response.Data.Reference)
}

func (suite *TestSuiteStandard) TestGetApplicationNotFound() {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/applications/%s", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.ApplicationResponse
	suite.decodeResponse(&r, &response)

	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("there is no application matching your query", *response.Error)
}

func (suite *TestSuiteStandard) TestGetApplicationInvalidID() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/applications/not-a-uuid", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
