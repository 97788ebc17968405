package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, _ := sonic.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func TestRegister_PostsPayloadAndReturnsMessage(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		writeJSON(w, http.StatusOK, map[string]string{"message": "Student registered successfully!"})
	}))
	defer srv.Close()

	ack, err := New(srv.URL).Register(context.Background(), map[string]interface{}{
		"fullName": "Ann",
		"skills":   []string{"HTML", "CSS"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Student registered successfully!", ack.Message)
	assert.Equal(t, "Ann", got["fullName"])
	assert.Equal(t, []interface{}{"HTML", "CSS"}, got["skills"])
}

func TestRegister_FailureMessageGoesThroughAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Registration failed", "error": "disk full"})
	}))
	defer srv.Close()

	ack, err := New(srv.URL).Register(context.Background(), map[string]interface{}{})

	require.NoError(t, err)
	assert.Equal(t, "Registration failed", ack.Message)
	assert.Equal(t, "disk full", ack.Error)
}

func TestRegister_UnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Register(context.Background(), map[string]interface{}{})

	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestList_DecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"_id": "b", "fullName": "Bo", "age": 30},
			{"_id": "a", "fullName": "Ann", "age": "21"},
		})
	}))
	defer srv.Close()

	students, err := New(srv.URL).List(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "b", students[0].ID())
	assert.Equal(t, float64(30), students[0]["age"])
	assert.Equal(t, "21", students[1]["age"])
}

func TestList_ServerErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch students", "error": "boom"})
	}))
	defer srv.Close()

	students, err := New(srv.URL).List(context.Background())

	require.Error(t, err)
	assert.Nil(t, students)
	assert.True(t, IsNetworkError(err))
	assert.Contains(t, err.Error(), "Failed to fetch students: boom")
}

func TestList_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []interface{}{})
	}))
	defer srv.Close()

	students, err := New(srv.URL).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}
