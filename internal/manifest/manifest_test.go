package manifest_test

import (
	"strings"
	"testing"

	"diarbench/internal/manifest"
)

func TestParseWithHeader(t *testing.T) {
	t.Parallel()

	input := "rec_id,rec_url,transcript_url\nrec01,http://host/a.wav,http://host/a.json\n"
	recs, err := manifest.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(recs))
	}
	if recs[0].ID != "rec01" || recs[0].AudioURL != "http://host/a.wav" || recs[0].TranscriptURL != "http://host/a.json" {
		t.Fatalf("unexpected recording %+v", recs[0])
	}
}

func TestParseWithoutHeaderAssumesColumnOrder(t *testing.T) {
	t.Parallel()

	input := "rec01,http://host/a.wav,http://host/a.json\nrec02,http://host/b.wav,http://host/b.json\n"
	recs, err := manifest.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recordings, got %d", len(recs))
	}
	if recs[1].ID != "rec02" {
		t.Fatalf("unexpected second recording %+v", recs[1])
	}
}

func TestParseHeaderWithReorderedColumns(t *testing.T) {
	t.Parallel()

	input := "transcript_url,rec_id,rec_url\nhttp://host/a.json,rec01,http://host/a.wav\n"
	recs, err := manifest.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if recs[0].ID != "rec01" || recs[0].AudioURL != "http://host/a.wav" {
		t.Fatalf("column mapping wrong: %+v", recs[0])
	}
}

func TestParseSkipsBlankRows(t *testing.T) {
	t.Parallel()

	input := "rec01,u1,t1\n,,\nrec02,u2,t2\n"
	recs, err := manifest.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected blank row skipped, got %d rows", len(recs))
	}
}

func TestParseRejectsShortRow(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Parse(strings.NewReader("rec01,u1\n")); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestParseRejectsEmptyID(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Parse(strings.NewReader(",u1,t1\n")); err == nil {
		t.Fatal("expected error for empty rec_id")
	}
}
