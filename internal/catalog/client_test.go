package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBodyParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exercises/bodyPartList", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["back","chest","upper legs"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	parts, err := client.ListBodyParts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"back", "chest", "upper legs"}, parts)
}

func TestListExercisesByBodyPart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exercises/bodyPart/upper%20legs", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"0043","name":"barbell squat","gifUrl":"https://cdn.example.com/0043.gif","target":"quads"},
			{"id":"0044","gifUrl":"https://cdn.example.com/0044.gif"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	exercises, err := client.ListExercisesByBodyPart(context.Background(), "upper legs")
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, "barbell squat", exercises[0].Name)
	assert.Equal(t, "quads", exercises[0].Target)
	// nameless catalog entries stay listable
	assert.Equal(t, "Unknown Exercise", exercises[1].Name)
}

func TestListExercisesByBodyPartRejectsEmptyPart(t *testing.T) {
	client := NewClient("http://localhost:0", "")
	_, err := client.ListExercisesByBodyPart(context.Background(), "")
	assert.Error(t, err)
}

func TestClientSurfacesUpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.ListBodyParts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
