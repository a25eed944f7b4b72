package fuzztests

import (
	"testing"
)

// languageSeeds covers the token and structure shapes the scanner has
// dedicated paths for: raw text, comments, doctype, foreign islands,
// malformed nesting, attribute edge cases.
var languageSeeds = []string{
	"",
	"plain text only",
	"<!DOCTYPE html><html><head><title>t</title></head><body><p>hi</p></body></html>",
	"<!DOCTYPE HTML PUBLIC \"-//W3C//DTD HTML 4.01//EN\"><html></html>",
	"<p class=\"a\" class=\"b\" id=x data-watch on-click='1'>dup</p>",
	"<img src=a.png srcset=\"a.png 1x, b.png 2x\" alt=''>",
	"<table><tfoot></tfoot><thead></thead><tr><td>x</td></tr></table>",
	"<select multiple size=4><button>b</button><option>o</option></select>",
	"<svg viewBox='0 0 1 1'><circle r=1/></svg>",
	"<script>if (a < b) { alert('</'+'script>') }</script>",
	"<style>p { color: red }</style>",
	"<!-- comment <p> not a tag --><p></p>",
	"<textarea><p>not markup</p></textarea>",
	"<div><span></div></span>",
	"<br/><input type=checkbox checked><hr>",
	"<ul><li>a<li>b</ul>",
	"<p",
	"</",
	"<!doctype",
	"<!--",
	"<b><i>unclosed",
	"<p>\xff\xfe invalid utf8 \x80</p>",
	"<div title=\"unterminated",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range languageSeeds {
		f.Add([]byte(seed))
	}
}
