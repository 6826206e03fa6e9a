package experiment_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/turbsynth/internal/config"
	"github.com/san-kum/turbsynth/internal/experiment"
	"github.com/san-kum/turbsynth/internal/spectral"
)

func run(cfg *config.Config) (*experiment.Result, error) {
	exp := experiment.New(*cfg)
	if err := exp.Setup(experiment.NewRegistry(), nil); err != nil {
		return nil, err
	}
	return exp.Run(context.Background())
}

var _ = Describe("Experiment", func() {
	Context("with a constant zero phase on a 4×4 grid", func() {
		var res *experiment.Result

		BeforeEach(func() {
			var err error
			res, err = run(config.GetPreset("constant-phase"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the zero mode at zero amplitude", func() {
			Expect(res.Ux[0][0]).To(Equal(complex128(0)))
			Expect(res.Uy[0][0]).To(Equal(complex128(0)))
		})

		It("produces velocity fields with zero mean", func() {
			sx, sy := 0.0, 0.0
			for r := range res.Field.Ux {
				for c := range res.Field.Ux[r] {
					sx += res.Field.Ux[r][c]
					sy += res.Field.Uy[r][c]
				}
			}
			Expect(sx).To(BeNumerically("~", 0, 1e-12))
			Expect(sy).To(BeNumerically("~", 0, 1e-12))
		})
	})

	Context("with the default configuration", func() {
		var (
			cfg *config.Config
			res *experiment.Result
		)

		BeforeEach(func() {
			cfg = config.DefaultConfig()
			cfg.Seed = 2024
			var err error
			res, err = run(cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("bins the spectrum into 49 increasing interior centers", func() {
			Expect(res.Spectrum.Bins).To(HaveLen(49))
			maxK := res.Grid.MaxK()
			prev := 0.0
			for _, b := range res.Spectrum.Bins {
				Expect(b.Center).To(BeNumerically(">", prev))
				Expect(b.Center).To(BeNumerically("<", maxK))
				prev = b.Center
			}
		})

		It("assigns every mode to exactly one bin", func() {
			modes := 0
			for _, b := range res.Spectrum.Bins {
				modes += b.Modes
			}
			Expect(modes).To(Equal(128 * 128))
		})

		It("yields a divergence-free field", func() {
			Expect(res.Metrics["max_divergence"]).To(BeNumerically("<", 1e-10))
		})

		It("anchors the reference line at the sixth positive bin", func() {
			Expect(res.Reference.Index).To(Equal(5))
			Expect(res.Reference.Values[5]).To(Equal(res.Spectrum.Bins[5].Energy))
		})

		It("reports the discarded imaginary part", func() {
			Expect(res.Metrics).To(HaveKey("max_imag"))
			Expect(res.Metrics["max_imag"]).To(BeNumerically(">", 0))
		})

		It("is reproducible for a fixed seed", func() {
			again, err := run(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Spectrum.Energies()).To(Equal(res.Spectrum.Energies()))
		})
	})

	Context("with Hermitian synthesis", func() {
		It("produces a real field up to rounding on both backends", func() {
			for _, backend := range []string{"dsp", "gonum"} {
				cfg := config.GetPreset("hermitian")
				cfg.Grid.N = 32
				cfg.Backend = backend
				res, err := run(cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Metrics["max_imag"]).To(BeNumerically("<", 1e-12), backend)
			}
		})
	})

	Context("with invalid settings", func() {
		It("rejects a non-positive grid", func() {
			cfg := config.DefaultConfig()
			cfg.Grid.N = 0
			_, err := run(cfg)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown backend", func() {
			cfg := config.DefaultConfig()
			cfg.Backend = "cuda"
			_, err := run(cfg)
			Expect(err).To(MatchError(ContainSubstring("unknown backend")))
		})

		It("surfaces a reference anchor that cannot be placed", func() {
			cfg := config.DefaultConfig()
			cfg.Grid.N = 4
			cfg.Spectrum.BinEdges = 2
			_, err := run(cfg)
			Expect(errors.Is(err, spectral.ErrAnchorOutOfRange)).To(BeTrue())

			var stageErr *spectral.StageError
			Expect(errors.As(err, &stageErr)).To(BeTrue())
			Expect(stageErr.Stage).To(Equal("reference"))
		})

		It("fails to run before setup", func() {
			_, err := experiment.New(*config.DefaultConfig()).Run(context.Background())
			Expect(err).To(HaveOccurred())
		})
	})

	It("stops when the context is canceled", func() {
		exp := experiment.New(*config.DefaultConfig())
		Expect(exp.Setup(experiment.NewRegistry(), nil)).To(Succeed())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := exp.Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Ensemble", func() {
	It("averages spectra across seeds", func() {
		cfg := config.GetPreset("coarse")
		results, err := experiment.NewEnsemble(*cfg, experiment.NewRegistry(), 4, 10).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))

		mean, err := experiment.MeanSpectrum(results)
		Expect(err).NotTo(HaveOccurred())
		Expect(mean.Bins).To(HaveLen(cfg.Bins()))

		for i, b := range mean.Bins {
			sum := 0.0
			for _, r := range results {
				sum += r.Spectrum.Bins[i].Energy
			}
			Expect(b.Energy).To(BeNumerically("~", sum/4, 1e-12*math.Max(1, sum)))
		}
	})

	It("rejects an empty ensemble", func() {
		_, err := experiment.NewEnsemble(*config.DefaultConfig(), experiment.NewRegistry(), 0, 1).Run(context.Background())
		Expect(err).To(HaveOccurred())
		_, err = experiment.MeanSpectrum(nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Registry", func() {
	It("lists the registered strategies", func() {
		r := experiment.NewRegistry()
		Expect(r.ListPolicies()).To(Equal([]string{"independent", "shared"}))
		Expect(r.ListPhases()).To(Equal([]string{"constant", "uniform"}))
		Expect(r.ListBackends()).To(Equal([]string{"dsp", "gonum"}))
	})

	It("reports unknown names", func() {
		r := experiment.NewRegistry()
		_, err := r.GetPolicy("coupled")
		Expect(err).To(MatchError("unknown policy: coupled"))
		_, err = r.GetPhaseSource("gaussian", 1, 0)
		Expect(err).To(HaveOccurred())
	})
})
