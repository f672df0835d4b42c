package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"detailing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicesCommandUsesEnvConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.Service{{ID: "s1", Name: "Wash", Price: 40, Duration: 60}})
	}))
	defer srv.Close()

	t.Setenv("CARTCTL_API_BASE_URL", srv.URL)
	t.Setenv("CARTCTL_SNAPSHOT", filepath.Join(t.TempDir(), "cart.json"))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"services"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "s1\tWash\t40.00\t60min\n", out.String())
}

func TestCartCommandSendsSessionCookie(t *testing.T) {
	var cookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("token"); err == nil {
			cookie = ck.Value
		}
		_, _ = w.Write([]byte(`{"services":[{"_id":"s1","name":"Wash","price":40,"duration":60}]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{
		"--api-base-url", srv.URL,
		"--session", "abc",
		"--snapshot", filepath.Join(t.TempDir(), "cart.json"),
		"cart",
	})
	require.NoError(t, root.Execute())
	assert.Equal(t, "abc", cookie)

	var printed struct {
		Services []models.Service `json:"services"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	require.Len(t, printed.Services, 1)
	assert.Equal(t, "s1", printed.Services[0].ID)
}

func TestInvalidBaseURL(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--api-base-url", "not a url", "services"})
	err := root.Execute()
	var ee *exitErr
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.code)
}
