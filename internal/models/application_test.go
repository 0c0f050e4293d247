package models_test

import (
	"context"
	"encoding/json"
	"log"
	"testing"

	"github.com/foerdercheck/backend/internal/checklist"
	"github.com/foerdercheck/backend/internal/extraction"
	"github.com/foerdercheck/backend/internal/models"
	"github.com/foerdercheck/backend/internal/reconcile"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TestSuiteStandard struct {
	suite.Suite
}

func TestStandard(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

// SetupTest is called before each test in the suite.
func (suite *TestSuiteStandard) SetupTest() {
	err := models.Connect(":memory:")
	if err != nil {
		log.Fatalf("Database connection failed with: %s", err.Error())
	}
}

// TearDownTest is called after each test in the suite.
func (suite *TestSuiteStandard) TearDownTest() {
	sqlDB, _ := models.DB.DB()
	sqlDB.Close()
}

func (suite *TestSuiteStandard) createTestApplication(application models.Application) models.Application {
	err := models.DB.Create(&application).Error
	if err != nil {
		suite.Assert().FailNow("application could not be created", err)
	}

	return application
}

func (suite *TestSuiteStandard) TestApplicationNotFound() {
	_, err := models.Store{}.Application(context.Background(), uuid.New())

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().EqualError(err, "there is no application matching your query")
}

func (suite *TestSuiteStandard) TestApplicationTimestampsUTC() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00001"})

	loaded, err := models.Store{}.Application(context.Background(), application.ID)
	suite.Require().NoError(err)

	suite.Assert().NotEqual(uuid.Nil, loaded.ID)
	suite.Assert().Equal("UTC", loaded.CreatedAt.Location().String())
}

func (suite *TestSuiteStandard) TestProfileMissing() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00002"})

	_, err := models.Store{}.Profile(context.Background(), application.ID)

	suite.Assert().ErrorIs(err, reconcile.ErrMissingRecord)
}

func (suite *TestSuiteStandard) TestProfileRoundTrip() {
	application := suite.createTestApplication(models.Application{
		Reference: "WFB-2024-00003",
		Profile:   json.RawMessage(`{"firstName": "Anna", "lastName": "Muster", "adultCount": 2, "childCount": 1}`),
	})

	profile, err := models.Store{}.Profile(context.Background(), application.ID)
	suite.Require().NoError(err)

	suite.Assert().Equal("Anna Muster", profile.FullName())
	suite.Assert().Equal(3, profile.HouseholdSize())
}

func (suite *TestSuiteStandard) TestFinancialsMissing() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00004"})

	_, err := models.Store{}.Financials(context.Background(), application.ID)

	suite.Assert().ErrorIs(err, reconcile.ErrMissingRecord)
}

func (suite *TestSuiteStandard) TestCoApplicantFinancialsEmpty() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00005"})

	financials, err := models.Store{}.CoApplicantFinancials(context.Background(), application.ID)
	suite.Require().NoError(err)

	suite.Assert().Empty(financials)
	suite.Assert().NotNil(financials)
}

func (suite *TestSuiteStandard) TestCoApplicantFinancials() {
	id := uuid.New()
	application := suite.createTestApplication(models.Application{
		Reference:             "WFB-2024-00006",
		CoApplicantFinancials: json.RawMessage(`{"` + id.String() + `": {"hasSalaryIncome": true, "monthlyNetSalary": "1.200,00"}}`),
	})

	financials, err := models.Store{}.CoApplicantFinancials(context.Background(), application.ID)
	suite.Require().NoError(err)

	suite.Require().Contains(financials, id)
	suite.Assert().True(financials[id].HasSalaryIncome)
}

func (suite *TestSuiteStandard) TestExtractionStructureEmpty() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00007"})

	structure, err := models.Store{}.ExtractionStructure(context.Background(), application.ID)
	suite.Require().NoError(err)

	suite.Assert().Empty(structure)
	suite.Assert().NotNil(structure)
}

func (suite *TestSuiteStandard) TestSaveExtractionStructure() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00008"})

	structure := extraction.Structure{
		"main_applicant": {
			"rentenbescheid": {
				NumberOfFiles:  1,
				RelevantValues: []string{"monthly_pension"},
				Files: map[string]extraction.FileData{
					"rente.pdf": {FilePath: "applicant/rente.pdf", Confidence: "0.9"},
				},
			},
		},
	}

	suite.Require().NoError(models.Store{}.SaveExtractionStructure(context.Background(), application.ID, structure))

	loaded, err := models.Store{}.ExtractionStructure(context.Background(), application.ID)
	suite.Require().NoError(err)

	group := loaded["main_applicant"]["rentenbescheid"]
	suite.Assert().Equal(1, group.NumberOfFiles)
	suite.Assert().Equal("0.9", group.Files["rente.pdf"].Confidence)
}

func (suite *TestSuiteStandard) TestChecklistItemMissing() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00009"})

	_, err := models.Store{}.ChecklistItem(context.Background(), application.ID)

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().EqualError(err, "there is no checklist item matching your query")
}

func (suite *TestSuiteStandard) TestSaveChecklistItem() {
	application := suite.createTestApplication(models.Application{Reference: "WFB-2024-00010"})

	result := &reconcile.HouseholdResult{
		Calculations:    []reconcile.CalculationLine{},
		Errors:          []string{},
		Warnings:        []string{},
		TotalIncome:     reconcile.ParseCurrency("2.100,00"),
		TotalExpenses:   reconcile.ParseCurrency("150,00"),
		AvailableIncome: reconcile.ParseCurrency("1.950,00"),
	}

	suite.Require().NoError(models.Store{}.SaveChecklistItem(context.Background(), application.ID, checklist.Generate(result)))

	item, err := models.Store{}.ChecklistItem(context.Background(), application.ID)
	suite.Require().NoError(err)

	suite.Assert().True(item.SystemPassed)
	suite.Assert().Equal("2100", item.TotalIncome.String())
}
