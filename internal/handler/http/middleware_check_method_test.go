// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux shaped like the auth routes. It does
// not use Handler.Init() to avoid service setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("logged in"))
	})
	router.Get("/auth/authenticated-user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/roles", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/roles", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"registered POST passes through", http.MethodPost, "/auth/login", http.StatusAccepted},
		{"registered GET passes through", http.MethodGet, "/auth/authenticated-user", http.StatusOK},
		{"second method of multi-method route", http.MethodPost, "/roles", http.StatusCreated},
		{"GET on POST-only route", http.MethodGet, "/auth/login", http.StatusNotFound},
		{"DELETE on GET-only route", http.MethodDelete, "/auth/authenticated-user", http.StatusNotFound},
		{"PATCH on multi-method route", http.MethodPatch, "/roles", http.StatusNotFound},
		{"HEAD is not implied by GET", http.MethodHead, "/roles", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/auth/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	rr := httptest.NewRecorder()
	buildRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	assert.Equal(t, "logged in", rr.Body.String())
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()

	const n = 50
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			method := http.MethodPost
			if i%2 == 1 {
				method = http.MethodPut
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/auth/login", nil))
			codes[i] = rr.Code
		}()
	}
	wg.Wait()

	for i, code := range codes {
		if i%2 == 1 {
			assert.Equal(t, http.StatusNotFound, code)
		} else {
			assert.Equal(t, http.StatusAccepted, code)
		}
	}
}
