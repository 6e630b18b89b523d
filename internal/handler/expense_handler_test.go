package handler

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestExpenseHandlerCreate(t *testing.T) {
	h := setupHandlers(t)
	group := createGroup(t, h, "Trip", []string{"Alice", "Bob"})
	alice := group.Members[0].ID
	bob := group.Members[1].ID

	expense := createExpense(t, h, group.ID, ExpenseRequest{
		Description:    "Groceries",
		Amount:         42.75,
		PayerID:        alice,
		ParticipantIDs: []string{alice, bob},
	})

	if expense.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if expense.GroupID != group.ID {
		t.Errorf("groupId = %q, want %q", expense.GroupID, group.ID)
	}
	if expense.Amount != 42.75 {
		t.Errorf("amount = %v, want 42.75", expense.Amount)
	}
	if len(expense.ParticipantIDs) != 2 {
		t.Errorf("participants: expected 2, got %d", len(expense.ParticipantIDs))
	}
}

func TestExpenseHandlerCreate_PayerOutsideGroup(t *testing.T) {
	h := setupHandlers(t)
	group := createGroup(t, h, "Trip", []string{"Alice"})
	alice := group.Members[0].ID

	c, rec := newContext(http.MethodPost, "/api/v1/groups/"+group.ID+"/expenses", ExpenseRequest{
		Description:    "Taxi",
		Amount:         15,
		PayerID:        "stranger",
		ParticipantIDs: []string{alice},
	})
	c.SetParamNames("id")
	c.SetParamValues(group.ID)

	if err := h.expenses.Create(c); err != nil {
		t.Fatalf("expected nil error (error in response), got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestExpenseHandlerUpdate(t *testing.T) {
	h := setupHandlers(t)
	group := createGroup(t, h, "Trip", []string{"Alice", "Bob"})
	alice := group.Members[0].ID
	bob := group.Members[1].ID

	expense := createExpense(t, h, group.ID, ExpenseRequest{
		Description:    "Taxi",
		Amount:         20,
		PayerID:        alice,
		ParticipantIDs: []string{alice, bob},
	})

	c, rec := newContext(http.MethodPut, "/api/v1/expenses/"+expense.ID, ExpenseRequest{
		Description:    "Airport taxi",
		Amount:         35,
		PayerID:        bob,
		ParticipantIDs: []string{alice, bob},
	})
	c.SetParamNames("id")
	c.SetParamValues(expense.ID)

	if err := h.expenses.Update(c); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Description != "Airport taxi" {
		t.Errorf("description = %q, want 'Airport taxi'", resp.Description)
	}
	if resp.PayerID != bob {
		t.Errorf("payerId = %q, want %q", resp.PayerID, bob)
	}
}

func TestExpenseHandlerListByGroup(t *testing.T) {
	h := setupHandlers(t)
	group := createGroup(t, h, "Trip", []string{"Alice"})
	alice := group.Members[0].ID

	for _, desc := range []string{"Lunch", "Museum"} {
		createExpense(t, h, group.ID, ExpenseRequest{
			Description:    desc,
			Amount:         10,
			PayerID:        alice,
			ParticipantIDs: []string{alice},
		})
	}

	c, rec := newContext(http.MethodGet, "/api/v1/groups/"+group.ID+"/expenses", nil)
	c.SetParamNames("id")
	c.SetParamValues(group.ID)

	if err := h.expenses.ListByGroup(c); err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}

	var resp []ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("expected 2 expenses, got %d", len(resp))
	}
}

func TestExpenseHandlerDelete_NotFound(t *testing.T) {
	h := setupHandlers(t)

	c, rec := newContext(http.MethodDelete, "/api/v1/expenses/nonexistent-id", nil)
	c.SetParamNames("id")
	c.SetParamValues("nonexistent-id")

	if err := h.expenses.Delete(c); err != nil {
		t.Fatalf("expected nil error (error in response), got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
