package booking

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL       = "https://api.apify.com/v2"
	scraperActor = "voyager~booking-scraper"
	userAgent    = "stayseeker/stayseeker"

	// Actor runs need minutes, not seconds. The run request blocks server
	// side via waitForFinish, so the client timeout must cover it.
	requestTimeout = 5 * time.Minute
)

// Client talks to the Apify platform: it starts booking-scraper actor runs
// and fetches the resulting dataset items.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	Actor      string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		Actor:  scraperActor,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Search runs the scraper for the given criteria and returns validated
// listings. The criteria's location must be non-empty.
func (c *Client) Search(criteria *Criteria) (*Listings, error) {
	return c.search(criteria)
}
