package apierr

import "testing"

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{401, CodeUnauthorized},
		{403, CodeForbidden},
		{404, CodeNotFound},
		{422, CodeValidation},
		{500, CodeServer},
		{503, CodeServer},
		{418, CodeUnknown},
		{400, CodeUnknown},
	}

	for _, tt := range tests {
		if got := CodeForStatus(tt.status); got != tt.want {
			t.Errorf("CodeForStatus(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestMessageForStatusPassThrough(t *testing.T) {
	// 400/401 keep the server-provided message
	if got := MessageForStatus(400); got != "" {
		t.Errorf("MessageForStatus(400) = %q, want empty", got)
	}
	if got := MessageForStatus(401); got != "" {
		t.Errorf("MessageForStatus(401) = %q, want empty", got)
	}
	if got := MessageForStatus(404); got == "" {
		t.Error("MessageForStatus(404) should be a fixed message")
	}
}

func TestErrorString(t *testing.T) {
	err := New("Validation failed. Please check your input.", CodeValidation, 422)
	if got := err.Error(); got != "Validation failed. Please check your input. (status 422)" {
		t.Fatalf("Error() = %q", got)
	}

	if got := Network().Error(); got != "Network error. Please check your internet connection." {
		t.Fatalf("Network().Error() = %q", got)
	}
}
