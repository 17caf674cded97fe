package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, post http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/horario", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"openingTime": "10:00", "closingTime": "12:00", "intervalMinutes": 60, "leadTimeMinutes": 360,
		})
	})
	mux.HandleFunc("/api/turnos", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && post != nil {
			post(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"id": "a1", "clientName": "Juan", "mail": "juan@mail.com", "date": "2099-01-05", "time": "10:00", "service": "Corte"},
		})
	})
	mux.HandleFunc("/api/dias-no-disponibles", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Slots(t *testing.T) {
	srv := newServer(t, nil)
	var out bytes.Buffer

	err := run(context.Background(), []string{"-url", srv.URL, "horarios", "-fecha", "2099-01-05"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "2099-01-05: 11:00\n", out.String())
}

func TestRun_SlotsSunday(t *testing.T) {
	srv := newServer(t, nil)
	var out bytes.Buffer

	err := run(context.Background(), []string{"-url", srv.URL, "horarios", "-fecha", "2099-01-04"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "sin horarios disponibles (disabled)")
}

func TestRun_BookServerConflict(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Ese horario ya fue reservado"}`))
	})
	var out bytes.Buffer

	err := run(context.Background(), []string{
		"-url", srv.URL, "reservar",
		"-nombre", "Lucía", "-mail", "lucia@mail.com", "-fecha", "2099-01-05", "-hora", "11:00",
	}, &out)

	require.Error(t, err)
	assert.Equal(t, "Ese horario ya fue reservado", describe(err))
}

func TestRun_BookTakenLocally(t *testing.T) {
	posted := false
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		posted = true
		w.WriteHeader(http.StatusCreated)
	})
	var out bytes.Buffer

	err := run(context.Background(), []string{
		"-url", srv.URL, "reservar",
		"-nombre", "Lucía", "-mail", "lucia@mail.com", "-fecha", "2099-01-05", "-hora", "10:00",
	}, &out)

	require.Error(t, err)
	assert.Equal(t, "El horario ya está ocupado.", describe(err))
	assert.False(t, posted)
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer

	require.ErrorIs(t, run(context.Background(), nil, &out), errUsage)
	require.ErrorIs(t, run(context.Background(), []string{"volar"}, &out), errUsage)
	assert.Contains(t, out.String(), "Comandos:")
}
