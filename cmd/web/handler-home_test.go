package main

import (
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_home(t *testing.T) {
	server := startTestServer(t, os.Stdout, newTestLookupEnv(t))

	doc := server.GetDoc(t, "/")

	require.Equal(t, 1, doc.Find("a[href='/briefs/create']:contains('Create a brief')").Length())
	require.Equal(t, 1, doc.Find("a[href='/actors']:contains('Manage talent')").Length())
	require.Equal(t, 1, doc.Find("a[href='/brands']:contains('Manage brands')").Length())
}

func Test_application_healthy(t *testing.T) {
	server := startTestServer(t, os.Stdout, newTestLookupEnv(t))

	resp := server.Get(t, "/api/healthy")
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func Test_application_notFound(t *testing.T) {
	server := startTestServer(t, os.Stdout, newTestLookupEnv(t))

	resp := server.Get(t, "/briefs/no-such-brief")
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
