// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, map[string]int{"flour": 598})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["flour"] != 598 {
		t.Errorf("flour = %d, want 598", got["flour"])
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestHttpReader_Read(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	r := NewHttpReader(WithUserAgent("test-agent"), WithTotalTimeout(2*time.Second))

	data, err := r.ReadWithContext(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ReadWithContext() error = %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("body = %q, want ok", data)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q, want test-agent", gotUA)
	}
	if r.Client.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", r.Client.Timeout)
	}

	if _, err := r.ReadWithContext(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := r.ReadWithContext(context.Background(), ""); err == nil {
		t.Error("expected error for empty url")
	}
}

func TestHttpReader_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHttpReader().ReadWithContext(ctx, srv.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestNewHttpReader_WithClient(t *testing.T) {
	c := &http.Client{Timeout: time.Second}
	r := NewHttpReader(WithClient(c))
	if r.Client != c {
		t.Error("expected custom client")
	}
	if r.UserAgent != HttpReaderUserAgent {
		t.Errorf("UserAgent = %q", r.UserAgent)
	}
}
