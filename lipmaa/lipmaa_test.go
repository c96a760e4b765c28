package lipmaa

import "testing"

func TestLipmaaReferenceValues(t *testing.T) {
	cases := map[uint64]uint64{
		1: 1, 2: 1, 3: 2, 4: 1, 5: 4, 6: 5, 7: 6, 8: 4, 13: 4, 14: 13,
	}
	for n, want := range cases {
		if got := Lipmaa(n); got != want {
			t.Errorf("Lipmaa(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestLipmaaMonotonicity(t *testing.T) {
	for n := uint64(2); n < 10000; n++ {
		got := Lipmaa(n)
		if got < 1 || got >= n {
			t.Fatalf("Lipmaa(%d) = %d, want value in [1, %d)", n, got, n)
		}
	}
}

func TestLipmaaReachesOneInLogSteps(t *testing.T) {
	for _, n := range []uint64{2, 100, 10000, 1_000_000, 1 << 40} {
		seq := n
		steps := 0
		for seq != 1 {
			seq = Lipmaa(seq)
			steps++
			if steps > 200 {
				t.Fatalf("Lipmaa chain from %d did not reach 1 within 200 steps", n)
			}
		}
		t.Logf("n=%d reached 1 in %d steps", n, steps)
	}
}
