package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	embedTenant   = "2f1b7c8e-8f44-4c3a-9d0e-6a3b5c1d2e4f"
	sessionTenant = "7a9d1e22-3b4c-4d5e-8f60-1a2b3c4d5e6f"
	ownerTenant   = "c0ffee00-1234-4abc-8def-0123456789ab"
)

type owners map[string]string

func (o owners) LookupOwningTenant(_ context.Context, formID string) (string, error) {
	if id, ok := o[formID]; ok {
		return id, nil
	}
	return "", errors.New("form not found")
}

type countingOwners struct {
	calls int
}

func (c *countingOwners) LookupOwningTenant(context.Context, string) (string, error) {
	c.calls++
	return ownerTenant, nil
}

func TestResolve_Chain(t *testing.T) {
	r := Resolver{Owners: owners{"form-1": ownerTenant}, Fallback: DefaultFallback}

	cases := []struct {
		name   string
		req    Request
		want   string
		source Source
	}{
		{"explicit wins", Request{Explicit: embedTenant, Session: sessionTenant, FormID: "form-1"}, embedTenant, SourceExplicit},
		{"malformed explicit is skipped", Request{Explicit: "acme", Session: sessionTenant}, sessionTenant, SourceSession},
		{"session", Request{Session: sessionTenant, FormID: "form-1"}, sessionTenant, SourceSession},
		{"form owner", Request{FormID: "form-1"}, ownerTenant, SourceFormOwner},
		{"malformed explicit falls to owner", Request{Explicit: "not-a-uuid", FormID: "form-1"}, ownerTenant, SourceFormOwner},
		{"unknown form falls back", Request{FormID: "form-2"}, DefaultFallback, SourceFallback},
		{"nothing falls back", Request{}, DefaultFallback, SourceFallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := r.Resolve(context.Background(), tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.TenantID)
			assert.Equal(t, tc.source, res.Source)
		})
	}
}

func TestResolve_ExplicitIsCanonical(t *testing.T) {
	r := Resolver{Fallback: DefaultFallback}

	for _, spelling := range []string{
		"{" + embedTenant + "}",
		"urn:uuid:" + embedTenant,
		" 2F1B7C8E-8F44-4C3A-9D0E-6A3B5C1D2E4F ",
	} {
		res, err := r.Resolve(context.Background(), Request{Explicit: spelling})
		require.NoError(t, err)
		assert.Equal(t, embedTenant, res.TenantID, spelling)
		assert.Equal(t, SourceExplicit, res.Source, spelling)
	}
}

func TestResolve_LookupSkippedWhenEarlierStepWins(t *testing.T) {
	o := &countingOwners{}
	r := Resolver{Owners: o}

	_, err := r.Resolve(context.Background(), Request{Session: sessionTenant, FormID: "f"})
	require.NoError(t, err)
	assert.Zero(t, o.calls)

	res, err := r.Resolve(context.Background(), Request{FormID: "f"})
	require.NoError(t, err)
	assert.Equal(t, 1, o.calls)
	assert.Equal(t, SourceFormOwner, res.Source)
}

func TestResolve_NoFallbackFails(t *testing.T) {
	r := Resolver{Owners: owners{}}

	_, err := r.Resolve(context.Background(), Request{FormID: "missing"})

	var resErr *TenantResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "missing", resErr.Request.FormID)
	assert.Contains(t, err.Error(), "form not found")
}

func TestResolve_NilOwners(t *testing.T) {
	_, err := Resolver{}.Resolve(context.Background(), Request{FormID: "x"})
	assert.Error(t, err)
}

func TestWellFormed(t *testing.T) {
	assert.True(t, WellFormed(embedTenant))
	assert.True(t, WellFormed(DefaultFallback))
	assert.False(t, WellFormed("acme"))
	assert.False(t, WellFormed(""))
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "explicit", SourceExplicit.String())
	assert.Equal(t, "form_owner", SourceFormOwner.String())
	assert.Equal(t, "none", SourceNone.String())
}
