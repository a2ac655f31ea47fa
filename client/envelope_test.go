package client

import "testing"

func TestDecodeEnvelope_Classification(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		ok      bool
		success bool
		failure bool
	}{
		{"success with data", `{"success":true,"data":{"id":"1"}}`, true, true, false},
		{"success with null data", `{"success":true,"data":null}`, true, true, false},
		{"success missing data", `{"success":true}`, true, false, false},
		{"failure with error", `{"success":false,"error":"Task not found"}`, true, false, true},
		{"failure with code", `{"success":false,"error":"nope","code":"CSRF_TOKEN_INVALID"}`, true, false, true},
		{"failure missing error", `{"success":false}`, true, false, false},
		{"failure with non-string error", `{"success":false,"error":null}`, true, false, false},
		{"missing success", `{"data":{"id":"1"}}`, true, false, false},
		{"success true failure shape", `{"success":true,"error":"x"}`, true, false, false},
		{"not json", `<html>502 Bad Gateway</html>`, false, false, false},
		{"json array", `[1,2,3]`, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := DecodeEnvelope([]byte(tt.body))
			if ok != tt.ok {
				t.Fatalf("DecodeEnvelope ok = %v, want %v", ok, tt.ok)
			}
			if env.IsSuccess() != tt.success {
				t.Errorf("IsSuccess = %v, want %v", env.IsSuccess(), tt.success)
			}
			if env.IsFailure() != tt.failure {
				t.Errorf("IsFailure = %v, want %v", env.IsFailure(), tt.failure)
			}
		})
	}
}

func TestDecodeEnvelope_FailureCarriesMessage(t *testing.T) {
	env, ok := DecodeEnvelope([]byte(`{"success":false,"error":"Carer already exists","code":"CONFLICT"}`))
	if !ok || !env.IsFailure() {
		t.Fatal("Expected well-formed failure envelope")
	}
	if *env.Error != "Carer already exists" {
		t.Errorf("Expected verbatim error string, got %q", *env.Error)
	}
	if env.Code != "CONFLICT" {
		t.Errorf("Expected code CONFLICT, got %q", env.Code)
	}
}
