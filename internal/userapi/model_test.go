package userapi

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestPageRequest_WithDefaults(t *testing.T) {
	t.Parallel()

	got := PageRequest{}.withDefaults()
	if got.Page != DefaultPage || got.Size != DefaultSize || got.SortBy != DefaultSortBy {
		t.Errorf("withDefaults() = %+v", got)
	}

	got = PageRequest{Page: 4, Size: 50, SortBy: "email"}.withDefaults()
	if got.Page != 4 || got.Size != 50 || got.SortBy != "email" {
		t.Errorf("withDefaults() changed explicit values: %+v", got)
	}
}

func TestTimestamp_RoundTripKeepsLayout(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`"2024-05-01T09:30:00"`,
		`"2024-05-01T09:30:00.123456"`,
		`"2024-05-01T09:30:00Z"`,
		`"2024-05-01T09:30:00+09:00"`,
		`"2024-05-01 09:30:00"`,
	}

	for _, in := range inputs {
		var ts Timestamp
		if err := json.Unmarshal([]byte(in), &ts); err != nil {
			t.Errorf("Unmarshal(%s) error = %v", in, err)
			continue
		}
		out, err := json.Marshal(ts)
		if err != nil {
			t.Errorf("Marshal error = %v", err)
			continue
		}
		if string(out) != in {
			t.Errorf("round trip %s -> %s", in, out)
		}
	}
}

func TestTimestamp_Invalid(t *testing.T) {
	t.Parallel()

	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for unrecognized timestamp")
	}
	if err := json.Unmarshal([]byte(`12`), &ts); err == nil {
		t.Error("expected error for non-string timestamp")
	}
}

func TestUser_OmitsZeroFields(t *testing.T) {
	t.Parallel()

	created := NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	data, err := json.Marshal(User{Username: "dave", CreatedAt: created})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	want := `{"username":"dave","createdAt":"2024-01-02T03:04:05Z"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestUser_Active(t *testing.T) {
	t.Parallel()

	if (User{}).Active() {
		t.Error("missing flag reported active")
	}
	if !(User{IsActive: Bool(true)}).Active() {
		t.Error("active flag not reported")
	}
}
