// SPDX-License-Identifier: MIT
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	playbackURLsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reelgate_playback_urls_issued_total",
		Help: "Signed playback URLs handed out by the play endpoint.",
	})

	streamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelgate_stream_requests_total",
		Help: "Stream requests by outcome.",
	}, []string{"outcome"})

	tokenRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelgate_token_rejections_total",
		Help: "Stream tokens rejected by reason.",
	}, []string{"reason"})
)

const (
	outcomeServed      = "served"
	outcomeRedirected  = "redirected"
	outcomeRejected    = "rejected"
	outcomeUnavailable = "unavailable"

	reasonMissing   = "missing_params"
	reasonMalformed = "malformed_expiry"
	reasonExpired   = "expired"
	reasonSignature = "bad_signature"
)

func recordStream(outcome string) {
	streamRequests.WithLabelValues(outcome).Inc()
}

func recordTokenRejection(reason string) {
	tokenRejections.WithLabelValues(reason).Inc()
	streamRequests.WithLabelValues(outcomeRejected).Inc()
}
