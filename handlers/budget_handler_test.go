// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"clarity-server/db"
	"clarity-server/models"
)

func TestCreateAndListBudgets(t *testing.T) {
	env := setupHandlerTest(t)
	user := env.createUser(t, "alice@example.com", "Sup3r$ecret", true)

	c, rec := env.jsonRequest(http.MethodPost, "/api/budgets",
		`{"amount":"600.00","period":"monthly","start_date":"2026-08-01"}`)
	withClaims(c, user)
	if err := CreateBudgetHandler()(c); err != nil {
		t.Fatalf("CreateBudgetHandler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created BudgetDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode budget: %v", err)
	}
	if created.StartDate != "2026-08-01" || created.Period != "monthly" {
		t.Errorf("Unexpected budget details: %+v", created)
	}
	if created.EndDate != nil {
		t.Errorf("Expected open-ended budget, got end date %v", *created.EndDate)
	}

	c, rec = env.jsonRequest(http.MethodGet, "/api/budgets", "")
	withClaims(c, user)
	if err := ListBudgetsHandler()(c); err != nil {
		t.Fatalf("ListBudgetsHandler returned error: %v", err)
	}
	var list BudgetListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode budget list: %v", err)
	}
	if len(list.Budgets) != 1 || list.Budgets[0].ID != created.ID {
		t.Errorf("Expected the created budget in the list, got %v", list.Budgets)
	}
}

func TestCreateBudgetValidation(t *testing.T) {
	env := setupHandlerTest(t)
	user := env.createUser(t, "alice@example.com", "Sup3r$ecret", true)

	c, rec := env.jsonRequest(http.MethodPost, "/api/budgets",
		`{"amount":"","period":"weekly","start_date":""}`)
	withClaims(c, user)
	if err := CreateBudgetHandler()(c); err != nil {
		t.Fatalf("CreateBudgetHandler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	resp := decodeError(t, rec)
	if !hasFieldError(resp, "amount", "Amount is required") {
		t.Errorf("Expected amount violation, got %v", resp.Details)
	}
	if !hasFieldError(resp, "period", "Period must be monthly or yearly") {
		t.Errorf("Expected period violation, got %v", resp.Details)
	}
	if !hasFieldError(resp, "start_date", "Start date is required") {
		t.Errorf("Expected start date violation, got %v", resp.Details)
	}
}

func TestDeleteBudgetScopedToOwner(t *testing.T) {
	env := setupHandlerTest(t)
	owner := env.createUser(t, "alice@example.com", "Sup3r$ecret", true)
	intruder := env.createUser(t, "mallory@example.com", "Sup3r$ecret", true)

	c, rec := env.jsonRequest(http.MethodPost, "/api/budgets",
		`{"amount":"600.00","period":"monthly","start_date":"2026-08-01"}`)
	withClaims(c, owner)
	if err := CreateBudgetHandler()(c); err != nil {
		t.Fatalf("CreateBudgetHandler returned error: %v", err)
	}
	var created BudgetDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode budget: %v", err)
	}

	c, rec = env.jsonRequest(http.MethodDelete, "/api/budgets/"+created.ID, "")
	c.SetParamNames("budget_id")
	c.SetParamValues(created.ID)
	withClaims(c, intruder)
	if err := DeleteBudgetHandler()(c); err != nil {
		t.Fatalf("DeleteBudgetHandler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for foreign budget, got %d", rec.Code)
	}

	var count int64
	db.Conn.Model(&models.Budget{}).Count(&count)
	if count != 1 {
		t.Errorf("Foreign delete must not remove the budget, count = %d", count)
	}

	c, rec = env.jsonRequest(http.MethodDelete, "/api/budgets/"+created.ID, "")
	c.SetParamNames("budget_id")
	c.SetParamValues(created.ID)
	withClaims(c, owner)
	if err := DeleteBudgetHandler()(c); err != nil {
		t.Fatalf("DeleteBudgetHandler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for owner delete, got %d", rec.Code)
	}
}
