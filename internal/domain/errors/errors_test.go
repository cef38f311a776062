package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrUnauthorized,
		ErrInvalidState,
		ErrInvalidArgument,
		ErrInvalidCredentials,
		ErrInsufficientStock,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Fatalf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}

func TestInsufficientStockErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("reserve: %w", &InsufficientStockError{ProductID: 7, Requested: 5, Available: 2})

	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("expected wrapped error to match ErrInsufficientStock")
	}

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatal("expected errors.As to extract InsufficientStockError")
	}
	if stockErr.ProductID != 7 || stockErr.Requested != 5 || stockErr.Available != 2 {
		t.Fatalf("unexpected details: %+v", stockErr)
	}
	if !strings.Contains(err.Error(), "product 7") {
		t.Fatalf("message should name the product: %s", err.Error())
	}
}

func TestInvalidTransitionErrorMatchesSentinel(t *testing.T) {
	err := &InvalidTransitionError{From: "PENDING", To: "SHIPPED"}

	if !errors.Is(err, ErrInvalidState) {
		t.Fatal("expected InvalidTransitionError to match ErrInvalidState")
	}
	if !strings.Contains(err.Error(), "PENDING") || !strings.Contains(err.Error(), "SHIPPED") {
		t.Fatalf("message should include both states: %s", err.Error())
	}
}
