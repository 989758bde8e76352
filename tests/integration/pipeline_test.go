package integration

import (
	"errors"
	"testing"

	"github.com/iho/paybatch/internal/domain"
	"github.com/iho/paybatch/internal/usecase"
	"github.com/iho/paybatch/tests/testutil"
)

func TestPipelineFullLifecycle(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,10.0
deposit,2,2,5.5
withdrawal,1,3,2.5
dispute,1,1,
resolve,1,1,
deposit,1,4,1.0
dispute,1,4,
chargeback,1,4,
`

	processor, err := testutil.RunPipeline(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := testutil.RenderTable(t, processor)
	want := "client,available,held,total,locked\n" +
		"1,7.5000,0.0000,7.5000,true\n" +
		"2,5.5000,0.0000,5.5000,false\n"

	if got != want {
		t.Errorf("account table mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPipelineIgnoresDanglingReferences(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,3.0
dispute,1,99,
resolve,1,1,
chargeback,1,1,
`

	processor, err := testutil.RunPipeline(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := testutil.RenderTable(t, processor)
	want := "client,available,held,total,locked\n" +
		"1,3.0000,0.0000,3.0000,false\n"

	if got != want {
		t.Errorf("account table mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	stats := processor.Stats()
	if stats.Ignored != 3 {
		t.Errorf("expected 3 ignored references, got %d", stats.Ignored)
	}
}

func TestPipelineInsufficientFundsIsFatal(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
withdrawal,1,2,1.0
deposit,2,3,9.0
`

	processor, err := testutil.RunPipeline(t, input)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// state accumulated before the failure is still reportable
	got := testutil.RenderTable(t, processor)
	want := "client,available,held,total,locked\n" +
		"1,1.0000,0.0000,1.0000,false\n"

	if got != want {
		t.Errorf("account table mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPipelineMalformedInputIsFatal(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
teleport,1,2,1.0
`

	_, err := testutil.RunPipeline(t, input)
	if !errors.Is(err, usecase.ErrSourceFailed) {
		t.Fatalf("expected ErrSourceFailed, got %v", err)
	}
}
