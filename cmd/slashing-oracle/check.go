package main

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/slashing-oracle/consensus-types/primitives"
	"github.com/prysmaticlabs/slashing-oracle/io/file"
	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/slasher/flags"
	"github.com/prysmaticlabs/slashing-oracle/slasher/oracle"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "finds every attester slashing in a list of attestations and checks reported slashings against them",
	Flags: []cli.Flag{
		flags.AttestationsFileFlag,
		flags.SlashingsFileFlag,
		flags.OutputFileFlag,
	},
	Action: checkAction,
}

type comparison struct {
	Consistent bool                        `json:"consistent"`
	Unexpected []*ethpb.AttesterSlashing   `json:"unexpected"`
	Missed     []primitives.ValidatorIndex `json:"missed"`
	Covered    []primitives.ValidatorIndex `json:"covered"`
}

type checkReport struct {
	NumAttestations   int                         `json:"num_attestations"`
	Slashings         []*ethpb.AttesterSlashing   `json:"attester_slashings"`
	SlashedValidators []primitives.ValidatorIndex `json:"slashed_validators"`
	Comparison        *comparison                 `json:"comparison,omitempty"`
}

func checkAction(cliCtx *cli.Context) error {
	attsPath := cliCtx.String(flags.AttestationsFileFlag.Name)
	if attsPath == "" {
		return errors.New("--attestations is required")
	}
	report, err := check(attsPath, cliCtx.String(flags.SlashingsFileFlag.Name))
	if err != nil {
		return err
	}
	if out := cliCtx.String(flags.OutputFileFlag.Name); out != "" {
		if err := file.WriteJSON(out, report); err != nil {
			return errors.Wrap(err, "could not write report")
		}
	}
	logCheckReport(report)
	if report.Comparison != nil && !report.Comparison.Consistent {
		return errors.New("reported slashings do not match the attestations")
	}
	return nil
}

// check loads the input files concurrently and builds the report. Reported
// slashings are only compared when slashingsPath is set.
func check(attsPath, slashingsPath string) (*checkReport, error) {
	var (
		atts     []*ethpb.IndexedAttestation
		reported []*ethpb.AttesterSlashing
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		atts, err = file.LoadAttestations(attsPath)
		return err
	})
	if slashingsPath != "" {
		g.Go(func() error {
			var err error
			reported, err = file.LoadAttesterSlashings(slashingsPath)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := oracle.DetectSlashings(atts)
	slashed, err := oracle.SlashedValidators(found)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute slashed validators")
	}
	report := &checkReport{
		NumAttestations:   len(atts),
		Slashings:         found,
		SlashedValidators: slashed,
	}
	if slashingsPath == "" {
		return report, nil
	}
	if _, err := oracle.SlashedValidators(reported); err != nil {
		return nil, err
	}
	cmp, err := oracle.Compare(reported, atts)
	if err != nil {
		return nil, err
	}
	report.Comparison = &comparison{
		Consistent: cmp.Consistent(),
		Unexpected: cmp.Unexpected,
		Missed:     cmp.Missed,
		Covered:    cmp.Covered,
	}
	return report, nil
}

func logCheckReport(r *checkReport) {
	fields := logrus.Fields{
		"attestations":      r.NumAttestations,
		"slashings":         len(r.Slashings),
		"slashedValidators": r.SlashedValidators,
	}
	if r.Comparison == nil {
		log.WithFields(fields).Info("Checked attestations")
		return
	}
	fields["consistent"] = r.Comparison.Consistent
	fields["missed"] = r.Comparison.Missed
	fields["unexpected"] = len(r.Comparison.Unexpected)
	if r.Comparison.Consistent {
		log.WithFields(fields).Info("Reported slashings match the attestations")
		return
	}
	log.WithFields(fields).Warn("Reported slashings do not match the attestations")
}
