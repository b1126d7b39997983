package ir

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestGenerateGoldenIR snapshots the full textual IR for a representative
// program exercising arithmetic, control flow, and print, the way the
// teacher's fixture suite snapshots interpreter output.
func TestGenerateGoldenIR(t *testing.T) {
	src := `
fn add(a: i32, b: i32) -> i32 {
	return a + b;
}

fn main() {
	let mut i: i32 = 0;
	let sum: i32 = 2 + 3;
	while i < 3 {
		if i == 1 {
			print(sum);
		}
		i = i + 1;
	}
}
`
	mod := generateSourceForSnapshot(t, src, true)
	snaps.MatchSnapshot(t, "arithmetic_control_flow_ir", mod.String())
}

func generateSourceForSnapshot(t *testing.T, src string, optimize bool) *Module {
	t.Helper()
	return generateSource(t, src, optimize)
}
