// Package beacon fetches slashing evidence from a beacon node over the
// standard beacon API.
package beacon

import (
	"context"
	"net/http"
	"time"

	eth2client "github.com/attestantio/go-eth2-client"
	"github.com/attestantio/go-eth2-client/api"
	eth2http "github.com/attestantio/go-eth2-client/http"
	"github.com/attestantio/go-eth2-client/spec"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/io/logs"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ErrBlockNotFound is returned when the beacon node has no block for the requested id.
var ErrBlockNotFound = errors.New("block not found")

// Client reads blocks from a beacon node.
type Client struct {
	blocks eth2client.SignedBeaconBlockProvider
}

// NewClient connects to the beacon node at endpoint. Requests time out after timeout.
func NewClient(ctx context.Context, endpoint string, timeout time.Duration) (*Client, error) {
	// Silence go-eth2-client logs unless they are warnings+.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	service, err := eth2http.New(
		ctx,
		eth2http.WithAddress(endpoint),
		eth2http.WithHTTPClient(&http.Client{Timeout: timeout}),
		eth2http.WithTimeout(timeout),
		eth2http.WithLogLevel(zerolog.WarnLevel),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to beacon node at %s", logs.MaskCredentialsLogging(endpoint))
	}
	provider, ok := service.(eth2client.SignedBeaconBlockProvider)
	if !ok {
		return nil, errors.New("beacon node client does not provide blocks")
	}
	log.WithField("endpoint", logs.MaskCredentialsLogging(endpoint)).Debug("Connected to beacon node")
	return &Client{blocks: provider}, nil
}

// AttesterSlashings returns the attester slashings included in the block with
// the given id, which may be a slot, a block root, "head", "genesis" or "finalized".
func (c *Client) AttesterSlashings(ctx context.Context, blockID string) ([]*ethpb.AttesterSlashing, error) {
	ctx, span := trace.StartSpan(ctx, "BeaconClient.AttesterSlashings")
	defer span.End()

	resp, err := c.blocks.SignedBeaconBlock(ctx, &api.SignedBeaconBlockOpts{Block: blockID})
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, errors.Wrapf(ErrBlockNotFound, "block %s", blockID)
		}
		return nil, errors.Wrapf(err, "could not fetch block %s", blockID)
	}
	if resp == nil || resp.Data == nil {
		return nil, errors.Wrapf(ErrBlockNotFound, "block %s", blockID)
	}
	slashings, err := attesterSlashingsFromBlock(resp.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "block %s", blockID)
	}
	log.WithFields(logrus.Fields{
		"block":     blockID,
		"version":   resp.Data.Version.String(),
		"slashings": len(slashings),
	}).Debug("Fetched attester slashings")
	return slashings, nil
}

func attesterSlashingsFromBlock(block *spec.VersionedSignedBeaconBlock) ([]*ethpb.AttesterSlashing, error) {
	switch block.Version {
	case spec.DataVersionDeneb:
		if block.Deneb == nil || block.Deneb.Message == nil || block.Deneb.Message.Body == nil {
			return nil, errors.New("deneb block is missing its body")
		}
		return attesterSlashingsFromPhase0(block.Deneb.Message.Body.AttesterSlashings)
	case spec.DataVersionElectra:
		if block.Electra == nil || block.Electra.Message == nil || block.Electra.Message.Body == nil {
			return nil, errors.New("electra block is missing its body")
		}
		return attesterSlashingsFromElectra(block.Electra.Message.Body.AttesterSlashings)
	default:
		return nil, errors.Errorf("unsupported block version %s", block.Version)
	}
}
