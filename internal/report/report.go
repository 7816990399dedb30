// Package report traces a single shot through a simulation and renders it as
// a table or a side-view plot.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"turretsim/internal/aim"
	"turretsim/internal/projectile"
	"turretsim/internal/sim"
	"turretsim/internal/units"
)

// ErrNoRetirement means the traced ball was still alive after MaxAge.
var ErrNoRetirement = errors.New("projectile did not retire")

// Sample is one recorded frame. Time is seconds since the shot.
type Sample struct {
	Time     float64
	Position rl.Vector3
	Speed    float32
}

// Shot is the full record of one traced projectile.
type Shot struct {
	Solution aim.Solution
	Solved   bool
	Samples  []Sample
	Apex     Sample
	Scored   bool
	Score    sim.Score
	Reason   projectile.RetireReason
	Age      float32
}

// Options controls tracing.
type Options struct {
	AimTicks int // ticks run before firing so auto-aim settles
	Every    int // keep every nth frame; the first and last are always kept
}

// Trace runs s at its fixed step, fires one ball and follows it until it
// retires.
func Trace(s *sim.Simulation, opts Options) (Shot, error) {
	if opts.Every < 1 {
		opts.Every = 1
	}
	dt := s.FixedStep

	for i := 0; i < opts.AimTicks; i++ {
		s.Tick(dt, sim.Input{})
	}

	var shot Shot
	st := s.Status()
	shot.Solution, shot.Solved = st.Solution, st.Solved

	id, err := s.Fire()
	if err != nil {
		return Shot{}, fmt.Errorf("trace: %w", err)
	}
	start := st.Time

	p, _ := s.Projectiles.Get(id)
	first := Sample{Position: p.Position, Speed: p.Speed()}
	shot.Samples = append(shot.Samples, first)
	shot.Apex = first

	retired := false
	scoreID := s.OnScore.AddListener(func(sc sim.Score) {
		if sc.ID == id {
			shot.Scored, shot.Score = true, sc
			shot.Score.Time -= start
		}
	})
	defer s.OnScore.RemoveListener(scoreID)

	retireID := s.Projectiles.OnRetire.AddListener(func(r projectile.Retirement) {
		if r.Projectile.ID != id {
			return
		}
		retired = true
		shot.Reason, shot.Age = r.Reason, r.Projectile.Age
		shot.Samples = append(shot.Samples, Sample{
			Time:     s.Status().Time - start + float64(dt),
			Position: r.Projectile.Position,
			Speed:    r.Projectile.Speed(),
		})
	})
	defer s.Projectiles.OnRetire.RemoveListener(retireID)

	maxTicks := int(math.Ceil(float64(projectile.MaxAge/dt))) + 2
	for n := 1; n <= maxTicks && !retired; n++ {
		s.Tick(dt, sim.Input{})

		p, ok := s.Projectiles.Get(id)
		if !ok {
			continue
		}
		sample := Sample{Time: s.Status().Time - start, Position: p.Position, Speed: p.Speed()}
		if sample.Position.Z > shot.Apex.Position.Z {
			shot.Apex = sample
		}
		if n%opts.Every == 0 {
			shot.Samples = append(shot.Samples, sample)
		}
	}

	if !retired {
		return shot, ErrNoRetirement
	}
	return shot, nil
}

// WriteTable prints the samples and a summary in display units.
func WriteTable(w io.Writer, shot Shot, u units.System) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	l := u.Label()

	fmt.Fprintf(tw, "t (s)\tx (%s)\ty (%s)\tz (%s)\tspeed (%s)\t\n", l, l, l, u.SpeedLabel())
	for _, s := range shot.Samples {
		fmt.Fprintf(tw, "%.3f\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			s.Time,
			u.ToDisplay(s.Position.X),
			u.ToDisplay(s.Position.Y),
			u.ToDisplay(s.Position.Z),
			u.ToDisplay(s.Speed),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if shot.Solved {
		sol := shot.Solution
		fmt.Fprintf(w, "aim:     yaw %.2f°  pitch %.2f°  elevation %.2f°", sol.Yaw, sol.Pitch, sol.Elevation)
		if sol.Fallback {
			fmt.Fprint(w, "  (fallback)")
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "aim:     no solution")
	}
	fmt.Fprintf(w, "apex:    %s at %.3f s\n", u.Format(shot.Apex.Position.Z), shot.Apex.Time)
	if shot.Scored {
		fmt.Fprintf(w, "scored:  yes at %.3f s\n", shot.Score.Time)
	} else {
		fmt.Fprintln(w, "scored:  no")
	}
	_, err := fmt.Fprintf(w, "retired: %s after %.2f s\n", shot.Reason, shot.Age)
	return err
}

// SideView returns height against floor distance from the first sample, in
// display units.
func SideView(shot Shot, u units.System) plotter.XYs {
	pts := make(plotter.XYs, 0, len(shot.Samples))
	if len(shot.Samples) == 0 {
		return pts
	}
	origin := rl.Vector2{X: shot.Samples[0].Position.X, Y: shot.Samples[0].Position.Y}
	for _, s := range shot.Samples {
		d := rl.Vector2Distance(origin, rl.Vector2{X: s.Position.X, Y: s.Position.Y})
		pts = append(pts, plotter.XY{
			X: float64(u.ToDisplay(d)),
			Y: float64(u.ToDisplay(s.Position.Z)),
		})
	}
	return pts
}

// SavePlot writes the side view to path. The image format follows the
// extension.
func SavePlot(shot Shot, u units.System, path string) error {
	p := plot.New()
	p.Title.Text = "Shot trajectory"
	p.X.Label.Text = fmt.Sprintf("distance (%s)", u.Label())
	p.Y.Label.Text = fmt.Sprintf("height (%s)", u.Label())
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(SideView(shot, u))
	if err != nil {
		return fmt.Errorf("building trajectory line: %w", err)
	}
	p.Add(line)
	p.Legend.Add("trajectory", line)

	if shot.Scored && len(shot.Samples) > 0 {
		first := shot.Samples[0].Position
		d := rl.Vector2Distance(
			rl.Vector2{X: first.X, Y: first.Y},
			rl.Vector2{X: shot.Score.Position.X, Y: shot.Score.Position.Y},
		)
		hit, err := plotter.NewScatter(plotter.XYs{{
			X: float64(u.ToDisplay(d)),
			Y: float64(u.ToDisplay(shot.Score.Position.Z)),
		}})
		if err != nil {
			return fmt.Errorf("building score marker: %w", err)
		}
		p.Add(hit)
		p.Legend.Add("scored", hit)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
