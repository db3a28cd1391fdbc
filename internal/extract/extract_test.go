package extract

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

func stubCommand(t *testing.T, script string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "sh", "-c", script)
	}
	t.Cleanup(func() { commandContext = original })
}

func TestPDFTextExtract(t *testing.T) {
	stubCommand(t, `printf 'Chase Credit Card\nClosing Date 01/15/2024\n'`)

	content := NewPDFText("pdftotext", time.Second).Extract(context.Background(), "statement.pdf")
	if !content.Usable() {
		t.Fatalf("expected usable content, got %#v", content)
	}
	if content.Text == "" || content.State != StateText {
		t.Fatalf("unexpected content %#v", content)
	}
}

func TestPDFTextNoText(t *testing.T) {
	stubCommand(t, `printf '   \n'`)

	content := NewPDFText("pdftotext", time.Second).Extract(context.Background(), "scan.pdf")
	if content.State != StateNoText {
		t.Fatalf("expected NoText sentinel, got %#v", content)
	}
	if content.Usable() {
		t.Fatalf("NoText must not be usable")
	}
}

func TestPDFTextToolFailure(t *testing.T) {
	stubCommand(t, `echo 'Syntax Error: broken xref' >&2; exit 1`)

	content := NewPDFText("pdftotext", time.Second).Extract(context.Background(), "broken.pdf")
	if content.State != StateError {
		t.Fatalf("expected Error sentinel, got %#v", content)
	}
	if content.Reason == "" {
		t.Fatalf("expected failure reason to be captured")
	}
}

func TestPDFTextTimeout(t *testing.T) {
	stubCommand(t, `sleep 5`)

	content := NewPDFText("pdftotext", 50*time.Millisecond).Extract(context.Background(), "slow.pdf")
	if content.State != StateError {
		t.Fatalf("expected timeout to map to Error sentinel, got %#v", content)
	}
}

func TestExiftoolTags(t *testing.T) {
	stubCommand(t, `printf 'DateTimeOriginal: 2024:01:15 10:30:00\nMake: Apple\nModel: iPhone 15\n'`)

	tags, err := NewExiftool("exiftool", time.Second).Tags(context.Background(), "IMG_0001.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if tags["DateTimeOriginal"] != "2024:01:15 10:30:00" {
		t.Fatalf("date tag not parsed, got %#v", tags)
	}
	if tags["Make"] != "Apple" {
		t.Fatalf("make tag not parsed, got %#v", tags)
	}
}

func TestExiftoolFailure(t *testing.T) {
	stubCommand(t, `exit 1`)

	if _, err := NewExiftool("exiftool", time.Second).Tags(context.Background(), "bad.jpg"); err == nil {
		t.Fatalf("expected error from failing tool")
	}
}

func TestParseTagOutputSkipsMalformed(t *testing.T) {
	tags := parseTagOutput("Make: Canon\ngarbage line without separator\n: orphan value\nModel: EOS R5\n")
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %#v", tags)
	}
}
