package fuzztests

import (
	"testing"

	"htmlcheck/internal/check"
	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
	"htmlcheck/internal/testkit"
	"htmlcheck/internal/tree"
)

// FuzzTreeParse checks that building the tree never panics and the
// result honors the structural invariants on any input.
func FuzzTreeParse(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.html", input))

		doc := tree.Parse(file, diag.NopReporter{})
		if err := testkit.CheckTreeInvariants(doc, file); err != nil {
			t.Fatal(err)
		}

		// FindAt must stay in range for any offset near the edges.
		for _, off := range []uint32{0, uint32(len(file.Content)) / 2, uint32(len(file.Content))} {
			if id := doc.FindAt(off); id >= tree.NodeID(doc.Len()) {
				t.Fatalf("FindAt(%d) = %d out of range", off, id)
			}
		}
	})
}

// FuzzValidate checks that full validation terminates without panics
// and reports every finding inside the file bounds.
func FuzzValidate(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.html", input))

		bag := diag.NewBag(256)
		rep := diag.BagReporter{Bag: bag}
		doc := tree.Parse(file, rep)
		check.Validate(file, doc, rep)

		size := uint32(len(file.Content))
		for _, d := range bag.Items() {
			if d.Primary.End < d.Primary.Start || d.Primary.End > size {
				t.Fatalf("diagnostic %s has span %v outside the file (%d bytes)", d.Code.ID(), d.Primary, size)
			}
		}
	})
}
