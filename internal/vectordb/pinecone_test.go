// ABOUTME: Tests for Pinecone conversions and error classification
// ABOUTME: Exercises the adapter without a live Pinecone project
package vectordb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"404", &pinecone.PineconeError{Code: http.StatusNotFound, Msg: errors.New("index not found")}, true},
		{"wrapped 404", fmt.Errorf("describe: %w", &pinecone.PineconeError{Code: http.StatusNotFound, Msg: errors.New("nope")}), true},
		{"401", &pinecone.PineconeError{Code: http.StatusUnauthorized, Msg: errors.New("bad key")}, false},
		{"500", &pinecone.PineconeError{Code: http.StatusInternalServerError, Msg: errors.New("boom")}, false},
		{"transport error", errors.New("dial tcp: connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFound(tt.err); got != tt.want {
				t.Errorf("isNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromPineconeIndex(t *testing.T) {
	dim := int32(768)
	idx := fromPineconeIndex(&pinecone.Index{
		Name:      "ezmedsafe-rag-index",
		Host:      "ezmedsafe-rag-index-abc.svc.pinecone.io",
		Dimension: &dim,
		Metric:    pinecone.Cosine,
		Status:    &pinecone.IndexStatus{Ready: true},
	})

	if idx.Name != "ezmedsafe-rag-index" {
		t.Errorf("Name = %q", idx.Name)
	}
	if idx.Host != "ezmedsafe-rag-index-abc.svc.pinecone.io" {
		t.Errorf("Host = %q", idx.Host)
	}
	if idx.Dimension != 768 {
		t.Errorf("Dimension = %d, want 768", idx.Dimension)
	}
	if idx.Metric != "cosine" {
		t.Errorf("Metric = %q, want cosine", idx.Metric)
	}
	if !idx.Ready {
		t.Error("Ready = false, want true")
	}

	if fromPineconeIndex(nil) != nil {
		t.Error("fromPineconeIndex(nil) should be nil")
	}
}

func TestFromPineconeIndex_NoStatus(t *testing.T) {
	idx := fromPineconeIndex(&pinecone.Index{Name: "pending"})
	if idx.Ready {
		t.Error("Ready should be false without a status")
	}
	if idx.Dimension != 0 {
		t.Errorf("Dimension = %d, want 0 without a dimension", idx.Dimension)
	}
}

func TestToPineconeVectors(t *testing.T) {
	in := []Vector{
		{ID: "a", Values: make([]float32, 768), Metadata: map[string]string{"drug_a": "Warfarin", "enzyme": "CYP2C9"}},
		{ID: "b", Values: make([]float32, 768), Metadata: map[string]string{}},
	}

	out, err := toPineconeVectors(in)
	if err != nil {
		t.Fatalf("toPineconeVectors: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	if out[0].Id != "a" {
		t.Errorf("Id = %q, want a", out[0].Id)
	}
	if out[0].Values == nil || len(*out[0].Values) != 768 {
		t.Error("Values should carry all 768 components")
	}
	got := out[0].Metadata.GetFields()["drug_a"].GetStringValue()
	if got != "Warfarin" {
		t.Errorf("metadata drug_a = %q, want Warfarin", got)
	}
	if len(out[1].Metadata.GetFields()) != 0 {
		t.Errorf("empty metadata should convert to an empty struct, got %v", out[1].Metadata.GetFields())
	}
}

func TestNewPinecone_RequiresKey(t *testing.T) {
	if _, err := NewPinecone("", ""); err == nil {
		t.Error("NewPinecone() should fail without an API key")
	}
}

func TestUpsert_UnknownHost(t *testing.T) {
	p, err := NewPinecone("test-key", "")
	if err != nil {
		t.Fatalf("NewPinecone: %v", err)
	}

	_, err = p.Upsert(context.Background(), &Index{Name: "x"}, "", []Vector{{ID: "a"}})
	if err == nil {
		t.Error("Upsert() should fail when the index host is unknown")
	}
}
