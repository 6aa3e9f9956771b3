package userapi

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
	"time"
)

func TestSearchCriteria_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria SearchCriteria
		want     url.Values
	}{
		{"nil", nil, url.Values{}},
		{"strings", SearchCriteria{CriteriaUsername: "ann", CriteriaEmail: "ann@x.io"}, url.Values{"username": {"ann"}, "email": {"ann@x.io"}}},
		{"bool", SearchCriteria{CriteriaIsActive: true}, url.Values{"isActive": {"true"}}},
		{"numbers", SearchCriteria{"age": 30, "score": 1.5, "limit": uint8(7)}, url.Values{"age": {"30"}, "score": {"1.5"}, "limit": {"7"}}},
		{"nil value dropped", SearchCriteria{"fullName": nil, "username": "a"}, url.Values{"username": {"a"}}},
		{"slice repeats key", SearchCriteria{"role": []string{"admin", "dev"}}, url.Values{"role": {"admin", "dev"}}},
		{"any slice", SearchCriteria{"id": []any{1, "2", nil}}, url.Values{"id": {"1", "2"}}},
		{"stringer", SearchCriteria{"window": 90 * time.Second}, url.Values{"window": {"1m30s"}}},
		{"byte slice is a string", SearchCriteria{"username": []byte("bob")}, url.Values{"username": {"bob"}}},
		{"empty string kept", SearchCriteria{"username": ""}, url.Values{"username": {""}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.criteria.Values()
			if err != nil {
				t.Fatalf("Values() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchCriteria_Values_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria SearchCriteria
	}{
		{"map", SearchCriteria{"filter": map[string]string{"a": "b"}}},
		{"struct", SearchCriteria{"user": User{Username: "a"}}},
		{"nested slice", SearchCriteria{"ids": [][]int{{1}}}},
		{"slice of maps", SearchCriteria{"ids": []any{map[string]any{}}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.criteria.Values(); !errors.Is(err, ErrUnsupportedCriteria) {
				t.Errorf("Values() error = %v, want ErrUnsupportedCriteria", err)
			}
		})
	}
}
