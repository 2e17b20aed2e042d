package app

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "MySecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Errorf("Unexpected hash prefix: %s", hash)
	}

	// Different salt every time
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed on second call: %v", err)
	}
	if hash == hash2 {
		t.Error("Two hashes of same password should be different (different salts)")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "MySecurePassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{"Correct password", password, hash, true, false},
		{"Wrong password", "WrongPassword456", hash, false, false},
		{"Invalid hash format", password, "invalid", false, true},
		{"Wrong algorithm", password, "$bcrypt$v=1$m=65536,t=1,p=4$salt$hash", false, true},
		{"Bad parameters", password, "$argon2id$v=19$memory$c2FsdA$aGFzaA", false, true},
		{"Bad salt", password, "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateAuthFile(t *testing.T) {
	authFile := filepath.Join(t.TempDir(), "auth.secret")

	if err := CreateAuthFile(authFile, "admin", "TestPassword123456", false); err != nil {
		t.Fatalf("CreateAuthFile() failed: %v", err)
	}

	info, err := os.Stat(authFile)
	if err != nil {
		t.Fatalf("Auth file not created: %v", err)
	}
	if info.Mode().Perm() != 0400 {
		t.Errorf("Expected file mode 0400, got %o", info.Mode().Perm())
	}

	a, err := LoadAuth(context.Background(), authFile)
	if err != nil {
		t.Fatalf("LoadAuth() failed: %v", err)
	}
	if !a.Enabled() || a.User != "admin" {
		t.Errorf("Expected enabled auth for admin, got %+v", a)
	}
	if ok, err := VerifyPassword("TestPassword123456", a.hash); err != nil || !ok {
		t.Errorf("Stored hash does not verify: %v %v", ok, err)
	}

	// Existing file without overwrite
	err = CreateAuthFile(authFile, "other", "OtherPassword123", false)
	if !errors.Is(err, ErrAuthFileExists) {
		t.Errorf("Expected ErrAuthFileExists, got %v", err)
	}

	// Existing file with overwrite
	if err := CreateAuthFile(authFile, "newuser", "NewPassword123456", true); err != nil {
		t.Fatalf("CreateAuthFile() with overwrite failed: %v", err)
	}
	a, err = LoadAuth(context.Background(), authFile)
	if err != nil {
		t.Fatalf("LoadAuth() failed: %v", err)
	}
	if a.User != "newuser" {
		t.Errorf("Expected user newuser, got %s", a.User)
	}
}

func TestLoadAuth(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name        string
		content     *string
		wantEnabled bool
		wantErr     bool
	}{
		{"No file", nil, false, false},
		{"Valid file", ptr("admin:$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA\n"), true, false},
		{"Missing colon", ptr("admin\n"), false, true},
		{"Empty user", ptr(":$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"), false, true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "auth"+string(rune('a'+i)))
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0600); err != nil {
					t.Fatal(err)
				}
			}
			a, err := LoadAuth(context.Background(), path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadAuth() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && a.Enabled() != tt.wantEnabled {
				t.Errorf("Enabled() = %v, want %v", a.Enabled(), tt.wantEnabled)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func TestAuthFilePath(t *testing.T) {
	if got, err := AuthFilePath("/etc/feiertage/auth.secret"); err != nil || got != "/etc/feiertage/auth.secret" {
		t.Errorf("AuthFilePath() = %q, %v", got, err)
	}
	got, err := AuthFilePath("")
	if err != nil {
		t.Fatalf("AuthFilePath() failed: %v", err)
	}
	if filepath.Base(got) != DefaultAuthFile {
		t.Errorf("Expected default file name %s, got %s", DefaultAuthFile, got)
	}
}

func TestRequireAuth(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("success")); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	})

	password := "TestPassword123456"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}
	enabled := &Auth{User: "admin", hash: hash}
	basic := func(user, pass string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
	}

	tests := []struct {
		name           string
		auth           *Auth
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{"Valid credentials", enabled, basic("admin", password), http.StatusOK, "success"},
		{"Invalid password", enabled, basic("admin", "wrongpassword"), http.StatusUnauthorized, "Unauthorized\n"},
		{"Invalid username", enabled, basic("wronguser", password), http.StatusUnauthorized, "Unauthorized\n"},
		{"No auth header", enabled, "", http.StatusUnauthorized, "Unauthorized\n"},
		{"No auth file", &Auth{File: "auth.secret"}, basic("admin", password), http.StatusForbidden, ErrAdminDisabled + "\n"},
		{"Nil auth", nil, "", http.StatusForbidden, ErrAdminDisabled + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/cache", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			tt.auth.RequireAuth(testHandler)(w, req)

			resp := w.Result()
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
			if body := w.Body.String(); body != tt.expectedBody {
				t.Errorf("Expected body %q, got %q", tt.expectedBody, body)
			}
			if tt.expectedStatus == http.StatusUnauthorized && resp.Header.Get("WWW-Authenticate") == "" {
				t.Error("Expected WWW-Authenticate header on 401")
			}
		})
	}
}

func TestArgon2idParameters(t *testing.T) {
	if argon2Memory < 64*1024 {
		t.Error("Argon2id memory should be at least 64MB (OWASP recommendation)")
	}
	if argon2Time < 1 {
		t.Error("Argon2id time parameter should be at least 1")
	}
	if argon2Threads < 1 {
		t.Error("Argon2id threads should be at least 1")
	}
	if argon2KeyLen < 32 {
		t.Error("Argon2id key length should be at least 32 bytes")
	}
	if saltLen < 16 {
		t.Error("Salt length should be at least 16 bytes")
	}
}
