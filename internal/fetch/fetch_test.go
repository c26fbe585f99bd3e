package fetch

import (
	"strings"
	"testing"
)

const postingPage = `
<html><body>
<section id="postingbody">
  <div class="print-information print-qrcode-container">
    <p class="print-qrcode-label">QR Code Link to This Post</p>
  </div>
  Growing construction company hiring 5 crew members.
  Pay $25-30/hr DOE. Benefits after 90 days.
</section>
</body></html>`

func TestExtractBodyPostingElement(t *testing.T) {
	got := ExtractBody(postingPage, "https://denver.craigslist.org/jjj/d/x/1.html")
	if !strings.Contains(got, "Growing construction company") {
		t.Errorf("missing posting text: %q", got)
	}
	if strings.Contains(got, "QR Code") {
		t.Errorf("QR banner must be stripped: %q", got)
	}
}

func TestExtractBodyEmptyPage(t *testing.T) {
	if got := ExtractBody("<html><body></body></html>", "https://example.org/x"); got != "" {
		t.Errorf("expected empty body, got %q", got)
	}
}

func TestCleanBody(t *testing.T) {
	in := "QR Code Link to This Post\n\n  Hiring now.  \n\n\nApply today.\n"
	got := cleanBody(in)
	if got != "Hiring now.\nApply today." {
		t.Errorf("got %q", got)
	}
}
