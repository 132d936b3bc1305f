package sharing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invitationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listd_invitations_created_total",
		Help: "Invitations created in PENDING state.",
	})
	invitationsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listd_invitations_accepted_total",
		Help: "Invitations accepted by their invitee.",
	})
	invitationsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listd_invitations_rejected_total",
		Help: "Invitations rejected and deleted.",
	})
)
