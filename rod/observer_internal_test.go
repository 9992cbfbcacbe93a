package rod

import (
	"testing"

	"github.com/fwojciec/roster"
	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	base := fingerprint{hash: 1, count: 10, scrollY: 0}

	tests := []struct {
		name string
		cur  fingerprint
		want roster.ChangeBatch
	}{
		{
			name: "no change",
			cur:  base,
		},
		{
			name: "elements added",
			cur:  fingerprint{hash: 2, count: 14},
			want: roster.ChangeBatch{{Kind: roster.ChangeChildList, Added: 4}},
		},
		{
			name: "children replaced in place",
			cur:  fingerprint{hash: 2, count: 10},
			want: roster.ChangeBatch{{Kind: roster.ChangeChildList, Added: 1}},
		},
		{
			name: "elements removed",
			cur:  fingerprint{hash: 2, count: 8},
			want: roster.ChangeBatch{{Kind: roster.ChangeAttributes}},
		},
		{
			name: "scrolled",
			cur:  fingerprint{hash: 1, count: 10, scrollY: 800},
			want: roster.ChangeBatch{{Kind: roster.ChangeScroll}},
		},
		{
			name: "added and scrolled",
			cur:  fingerprint{hash: 3, count: 12, scrollY: 800},
			want: roster.ChangeBatch{
				{Kind: roster.ChangeChildList, Added: 2},
				{Kind: roster.ChangeScroll},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, diff(base, tt.cur))
		})
	}
}
