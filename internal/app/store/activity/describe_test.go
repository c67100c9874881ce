package activity

import "testing"

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		action string
		target string
		want   string
	}{
		{"login ignores target", ActionLogin, "whatever", "User logged in"},
		{"logout ignores target", ActionLogout, "", "User logged out"},
		{"view", ActionView, "Seaview Cottage", "Viewed Seaview Cottage"},
		{"create", ActionCreate, "Seaview Cottage", "Created Seaview Cottage"},
		{"update", ActionUpdate, "Jane Doe", "Updated Jane Doe"},
		{"delete", ActionDelete, "guest John from Seaview Cottage", "Deleted guest John from Seaview Cottage"},
		{"add account", ActionAddAccount, "Jane Doe", "Added a new account: Jane Doe"},
		{"unknown action", "archive", "Seaview Cottage", "Performed archive on Seaview Cottage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.action, tt.target)
			if got != tt.want {
				t.Errorf("Describe(%q, %q) = %q, want %q", tt.action, tt.target, got, tt.want)
			}
		})
	}
}
