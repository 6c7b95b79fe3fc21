package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		in   string
		want Sentiment
	}{
		{"positive", SentimentPositive},
		{" Negative ", SentimentNegative},
		{"NEUTRAL", SentimentNeutral},
		{"mixed", SentimentNeutral},
		{"", SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSentiment(tt.in))
		})
	}
}
