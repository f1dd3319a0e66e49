package validator

import (
	"encoding/json"
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{name: "array", input: `["Array", " Hash Table ", "Array", ""]`, want: StringList{"Array", "Hash Table"}},
		{name: "comma separated string", input: `"Google, Meta,,Google "`, want: StringList{"Google", "Meta"}},
		{name: "empty string", input: `""`, want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal() = %v, want %v", got, tt.want)
			}
		})
	}

	var bad StringList
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Errorf("Unmarshal(42) expected error")
	}
}

func TestValidateQuestion(t *testing.T) {
	bv := NewBusinessValidator()

	tests := []struct {
		name       string
		req        QuestionRequest
		wantFields []string
	}{
		{
			name: "valid with lowercase difficulty",
			req:  QuestionRequest{Title: "Two Sum", Link: "https://leetcode.com/problems/two-sum", Difficulty: "medium"},
		},
		{
			name:       "blank title and missing link",
			req:        QuestionRequest{Title: "   "},
			wantFields: []string{"title", "link"},
		},
		{
			name:       "unknown difficulty",
			req:        QuestionRequest{Title: "t", Link: "l", Difficulty: "Extreme"},
			wantFields: []string{"difficulty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateQuestion(&tt.req)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateQuestion() = %v, want fields %v", errs, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateAttempt(t *testing.T) {
	bv := NewBusinessValidator()
	validID := "3f1c2b9e-8a4d-4c55-9b0a-2d6f7e8a9b10"

	tests := []struct {
		name    string
		req     AttemptCreateRequest
		wantErr bool
	}{
		{name: "valid zero minutes", req: AttemptCreateRequest{QuestionID: validID, TimeSpent: intPtr(0), Result: "solved"}},
		{name: "malformed question id", req: AttemptCreateRequest{QuestionID: "abc", TimeSpent: intPtr(5), Result: "Solved"}, wantErr: true},
		{name: "missing time", req: AttemptCreateRequest{QuestionID: validID, Result: "Solved"}, wantErr: true},
		{name: "negative time", req: AttemptCreateRequest{QuestionID: validID, TimeSpent: intPtr(-1), Result: "Solved"}, wantErr: true},
		{name: "unknown result", req: AttemptCreateRequest{QuestionID: validID, TimeSpent: intPtr(5), Result: "Gave up"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := bv.ValidateAttemptCreate(&tt.req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("ValidateAttemptCreate() = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}

	if errs := bv.ValidateAttemptUpdate(&AttemptUpdateRequest{TimeSpent: intPtr(10), Result: "Partial"}); len(errs) > 0 {
		t.Errorf("ValidateAttemptUpdate() = %v", errs)
	}
}

func TestValidatorStruct(t *testing.T) {
	v := New()
	err := v.Struct(&AttemptUpdateRequest{Result: "Solved"})
	if err == nil {
		t.Fatalf("Struct() expected error")
	}
	errs, ok := err.(ValidationErrors)
	if !ok || errs[0].Field != "time_spent" || errs[0].Rule != "required" {
		t.Errorf("Struct() = %#v", err)
	}
	if err.Error() != "time_spent: is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
