package layout

import "fmt"

// Severity indicates whether a finding blocks output generation or is
// merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocks GDS output
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result.
type Finding struct {
	Cell     string
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	return fmt.Sprintf("[%s] cell %s: %s", f.Severity, f.Cell, f.Message)
}

// Result bundles errors (blocking) and warnings (advisory).
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// OK reports whether no blocking errors were found.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// LayerTable answers whether a layer spec is known to the process.
// Implemented by tech.Tech.
type LayerTable interface {
	Known(layer LayerSpec) bool
}

// Validate runs all checks on a cell. It is read-only and never
// mutates the cell. Passing a nil table skips the layer checks.
func Validate(c *Cell, layers LayerTable) Result {
	var res Result
	res.Errors = append(res.Errors, validateRects(c)...)
	res.Errors = append(res.Errors, validatePortNames(c)...)
	res.Warnings = append(res.Warnings, validatePortPlacement(c)...)
	if layers != nil {
		res.Errors = append(res.Errors, validateLayers(c, layers)...)
	}
	return res
}

// validateRects checks that every rectangle has positive extent.
func validateRects(c *Cell) []Finding {
	var errs []Finding
	for i, r := range c.Rects {
		if r.Size.X <= 0 {
			errs = append(errs, Finding{
				Cell:     c.Name,
				Message:  fmt.Sprintf("rect %d on %s: size X is %.4f, must be positive", i, r.Layer, r.Size.X),
				Severity: SeverityError,
			})
		}
		if r.Size.Y <= 0 {
			errs = append(errs, Finding{
				Cell:     c.Name,
				Message:  fmt.Sprintf("rect %d on %s: size Y is %.4f, must be positive", i, r.Layer, r.Size.Y),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validatePortNames checks that port names are unique and non-empty.
func validatePortNames(c *Cell) []Finding {
	var errs []Finding
	seen := make(map[string]bool)
	for _, p := range c.Ports {
		if p.Name == "" {
			errs = append(errs, Finding{
				Cell:     c.Name,
				Message:  "port with empty name",
				Severity: SeverityError,
			})
			continue
		}
		if seen[p.Name] {
			errs = append(errs, Finding{
				Cell:     c.Name,
				Message:  fmt.Sprintf("duplicate port name %q", p.Name),
				Severity: SeverityError,
			})
		}
		seen[p.Name] = true
	}
	return errs
}

// validatePortPlacement warns when a port center lies outside the cell
// bounding box. Generators sometimes place ports on plate edges; a port
// fully outside the geometry is almost certainly a formula slip.
func validatePortPlacement(c *Cell) []Finding {
	if len(c.Rects) == 0 {
		return nil
	}
	min, max := c.BBox()
	var warnings []Finding
	for _, p := range c.Ports {
		if p.Center.X < min.X || p.Center.X > max.X || p.Center.Y < min.Y || p.Center.Y > max.Y {
			warnings = append(warnings, Finding{
				Cell:     c.Name,
				Message:  fmt.Sprintf("port %q center (%.3f, %.3f) outside cell bounding box", p.Name, p.Center.X, p.Center.Y),
				Severity: SeverityWarning,
			})
		}
	}
	return warnings
}

// validateLayers checks that every rectangle and port layer is known
// to the process layer table.
func validateLayers(c *Cell, layers LayerTable) []Finding {
	var errs []Finding
	reported := make(map[LayerSpec]bool)
	report := func(l LayerSpec) {
		if reported[l] {
			return
		}
		reported[l] = true
		errs = append(errs, Finding{
			Cell:     c.Name,
			Message:  fmt.Sprintf("unknown layer %q", l),
			Severity: SeverityError,
		})
	}
	for _, r := range c.Rects {
		if !layers.Known(r.Layer) {
			report(r.Layer)
		}
	}
	for _, p := range c.Ports {
		if !layers.Known(p.Layer) {
			report(p.Layer)
		}
	}
	return errs
}
