package service

import (
	"errors"
	"testing"
)

func TestCreateVariableNormalizesKey(t *testing.T) {
	svc := NewVariableService(setupServiceTestDB(t))

	variable, err := svc.Create(VariableInput{Key: "category_name", Value: "DevOps", Category: " Course "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if variable.Key != "{{category_name}}" || variable.Name != "category_name" {
		t.Fatalf("unexpected key normalization: %+v", variable)
	}
	if variable.Category != "course" {
		t.Fatalf("expected lowercase category, got %q", variable.Category)
	}
	if !variable.IsGlobal() {
		t.Fatal("expected variable without scope to be global")
	}

	if _, err := svc.Create(VariableInput{Key: "{{category_name}}", Value: "Agile"}); !errors.Is(err, ErrVariableExists) {
		t.Fatalf("expected ErrVariableExists, got %v", err)
	}
	if _, err := svc.Create(VariableInput{Key: "{{category_name}}", Value: "Agile", Scope: "London"}); err != nil {
		t.Fatalf("same key in another scope should be allowed: %v", err)
	}
}

func TestCreateVariableRejectsBadNames(t *testing.T) {
	svc := NewVariableService(setupServiceTestDB(t))

	for _, key := range []string{"", "{{}}", "city name", "{{price-usd}}"} {
		if _, err := svc.Create(VariableInput{Key: key}); !errors.Is(err, ErrInvalidVariableName) {
			t.Fatalf("key %q: expected ErrInvalidVariableName, got %v", key, err)
		}
	}
}

func TestVariableMappingsByScope(t *testing.T) {
	svc := NewVariableService(setupServiceTestDB(t))

	seed := []VariableInput{
		{Key: "currency", Value: "€"},
		{Key: "price", Value: "1,999"},
		{Key: "currency", Value: "£", Scope: "London"},
	}
	for _, input := range seed {
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("failed to seed %s: %v", input.Key, err)
		}
	}

	globals, err := svc.Globals()
	if err != nil {
		t.Fatalf("Globals returned error: %v", err)
	}
	if len(globals) != 2 || globals["currency"] != "€" || globals["price"] != "1,999" {
		t.Fatalf("unexpected globals: %v", globals)
	}

	scoped, err := svc.Scoped("London")
	if err != nil {
		t.Fatalf("Scoped returned error: %v", err)
	}
	if len(scoped) != 1 || scoped["currency"] != "£" {
		t.Fatalf("unexpected scoped mapping: %v", scoped)
	}

	empty, err := svc.Scoped("  ")
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty mapping for blank scope, got %v %v", empty, err)
	}
}

func TestUpdateAndDeleteVariable(t *testing.T) {
	svc := NewVariableService(setupServiceTestDB(t))

	global, _ := svc.Create(VariableInput{Key: "city", Value: "New York"})
	if _, err := svc.Create(VariableInput{Key: "city", Value: "London", Scope: "uk"}); err != nil {
		t.Fatalf("failed to seed scoped variable: %v", err)
	}

	updated, err := svc.Update(global.ID, VariableUpdate{Value: strPtr("Boston")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Value != "Boston" || updated.Key != "{{city}}" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(global.ID, VariableUpdate{Scope: strPtr("uk")}); !errors.Is(err, ErrVariableExists) {
		t.Fatalf("expected ErrVariableExists when moving into an occupied scope, got %v", err)
	}

	scope := "uk"
	listed, err := svc.List(VariableFilter{Scope: &scope})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one uk variable, got %v %v", listed, err)
	}

	if err := svc.Delete(global.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(global.ID); !errors.Is(err, ErrVariableNotFound) {
		t.Fatalf("expected ErrVariableNotFound, got %v", err)
	}
	if err := svc.Delete(global.ID); !errors.Is(err, ErrVariableNotFound) {
		t.Fatalf("expected ErrVariableNotFound on second delete, got %v", err)
	}
}
