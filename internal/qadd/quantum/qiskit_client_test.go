package quantum

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIBM struct {
	polls      int32
	finalState string
	submitted  QiskitCircuit
	counts     map[string]int
}

func (f *fakeIBM) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(TokenEndpoint, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["apiToken"] != "secret" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           "tok",
			"ttl":          3600,
			"access_token": "access-123",
		})
	})

	mux.HandleFunc(JobsEndpoint, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.submitted))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(QiskitJob{ID: "job-1", Backend: f.submitted.Backend, Status: JobStatusQueued})
	})

	mux.HandleFunc(JobsEndpoint+"/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/results"):
			json.NewEncoder(w).Encode(QiskitResult{
				Counts:  f.counts,
				Success: true,
				JobID:   "job-1",
			})
		default:
			status := JobStatusRunning
			if atomic.AddInt32(&f.polls, 1) >= 2 {
				status = f.finalState
			}
			json.NewEncoder(w).Encode(QiskitJob{ID: "job-1", Status: status})
		}
	})

	return mux
}

func newTestClient(t *testing.T, server *httptest.Server) *QiskitClient {
	t.Helper()
	client, err := NewQiskitClient(context.Background(), &QiskitConfig{
		APIKey:       "secret",
		BaseURL:      server.URL,
		PollInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestQiskitClientRequiresAPIKey(t *testing.T) {
	_, err := NewQiskitClient(context.Background(), &QiskitConfig{})
	assert.Error(t, err)
}

func TestQiskitClientAuthenticationFailure(t *testing.T) {
	fake := &fakeIBM{finalState: JobStatusCompleted}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	_, err := NewQiskitClient(context.Background(), &QiskitConfig{
		APIKey:  "wrong",
		BaseURL: server.URL,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
}

func TestQiskitBackendRun(t *testing.T) {
	fake := &fakeIBM{finalState: JobStatusCompleted, counts: map[string]int{"011": 1000}}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	backend := NewQiskitBackend(newTestClient(t, server), "ibm_test", time.Second)

	b := NewSequenceBuilder("remote", 3, 3)
	b.X(0)
	b.X(1)
	for q := 0; q < 3; q++ {
		b.Measure(q, q)
	}
	seq, err := b.Build()
	require.NoError(t, err)

	counts, err := backend.Run(context.Background(), seq, 1000)
	require.NoError(t, err)
	assert.Equal(t, Counts{"011": 1000}, counts)

	assert.Equal(t, 1000, fake.submitted.Shots)
	assert.Equal(t, "ibm_test", fake.submitted.Backend)
	assert.Equal(t, ToQASM(seq), fake.submitted.QASM)
}

func TestQiskitBackendFailedJob(t *testing.T) {
	fake := &fakeIBM{finalState: JobStatusFailed}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	backend := NewQiskitBackend(newTestClient(t, server), "ibm_test", time.Second)

	b := NewSequenceBuilder("remote", 1, 1)
	b.Measure(0, 0)
	seq, err := b.Build()
	require.NoError(t, err)

	_, err = backend.Run(context.Background(), seq, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job job-1 failed")
}

func TestQiskitClientWaitTimeout(t *testing.T) {
	fake := &fakeIBM{finalState: JobStatusRunning}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.WaitForJob(context.Background(), "job-1", 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
