package main

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/0x0FACED/go-sweepline/pkg/logger"
	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/0x0FACED/go-sweepline/static"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

// site mirrors one builder input so that cells can be mapped back to their
// source geometry through Cell.SourceIndex.
type site struct {
	isSegment bool
	a, b      voronoi.Point
}

func generateRandPoints(n, width, height int) []voronoi.Point {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	points := make([]voronoi.Point, n)
	for i := 0; i < n; i++ {
		points[i] = voronoi.Point{
			X: int32(rnd.Intn(width)),
			Y: int32(rnd.Intn(height)),
		}
	}
	return points
}

func generateGridPoints(n, width, height int) []voronoi.Point {
	points := make([]voronoi.Point, 0, n)

	rows := int(math.Sqrt(float64(n)))
	if rows == 0 {
		rows = 1
	}
	cols := (n + rows - 1) / rows

	xStep := width / (cols + 1)
	yStep := height / (rows + 1)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if len(points) < n {
				points = append(points, voronoi.Point{
					X: int32((j + 1) * xStep),
					Y: int32((i + 1) * yStep),
				})
			}
		}
	}
	return points
}

// generateBarSegments lays m horizontal segments across the middle of the
// box at distinct heights. They never intersect each other.
func generateBarSegments(m, width, height int) [][2]voronoi.Point {
	segments := make([][2]voronoi.Point, 0, m)
	for i := 0; i < m; i++ {
		y := int32((i + 1) * height / (m + 1))
		segments = append(segments, [2]voronoi.Point{
			{X: int32(width / 4), Y: y},
			{X: int32(3 * width / 4), Y: y},
		})
	}
	return segments
}

// onSegment reports whether p lies on the (horizontal) bar s.
func onSegment(p voronoi.Point, s [2]voronoi.Point) bool {
	return p.Y == s[0].Y && p.X >= s[0].X && p.X <= s[1].X
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi diagram (points and segments)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Width",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Height",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

func retrievePoint(cell *voronoi.Cell, sites []site) voronoi.Point {
	s := sites[cell.SourceIndex()]
	if cell.SourceCategory() == voronoi.SourceSegmentEndPoint {
		return s.b
	}
	return s.a
}

func retrieveSegment(cell *voronoi.Cell, sites []site) (voronoi.Point, voronoi.Point) {
	s := sites[cell.SourceIndex()]
	low, high := s.a, s.b
	if high.X < low.X || (high.X == low.X && high.Y < low.Y) {
		low, high = high, low
	}
	return low, high
}

// clipInfiniteEdge produces drawable endpoints for an unbounded edge: the
// known vertex (if any) and a far point along the bisector direction. An
// unbounded edge is always linear and involves at least one point site.
func clipInfiniteEdge(edge *voronoi.Edge, sites []site, side float64) [2][2]float64 {
	cell1 := edge.Cell()
	cell2 := edge.Twin().Cell()

	var originX, originY, dirX, dirY float64
	if cell1.ContainsPoint() && cell2.ContainsPoint() {
		p1 := retrievePoint(cell1, sites)
		p2 := retrievePoint(cell2, sites)
		originX = (float64(p1.X) + float64(p2.X)) * 0.5
		originY = (float64(p1.Y) + float64(p2.Y)) * 0.5
		dirX = float64(p1.Y) - float64(p2.Y)
		dirY = float64(p2.X) - float64(p1.X)
	} else {
		var origin voronoi.Point
		var low, high voronoi.Point
		if cell1.ContainsSegment() {
			origin = retrievePoint(cell2, sites)
			low, high = retrieveSegment(cell1, sites)
		} else {
			origin = retrievePoint(cell1, sites)
			low, high = retrieveSegment(cell2, sites)
		}
		dx := float64(high.X) - float64(low.X)
		dy := float64(high.Y) - float64(low.Y)
		if (low == origin) != cell1.ContainsPoint() {
			dirX, dirY = dy, -dx
		} else {
			dirX, dirY = -dy, dx
		}
		originX = float64(origin.X)
		originY = float64(origin.Y)
	}

	koef := side / math.Max(math.Abs(dirX), math.Abs(dirY))
	var out [2][2]float64
	if v0 := edge.Vertex0(); v0 != nil {
		out[0] = [2]float64{v0.X, v0.Y}
	} else {
		out[0] = [2]float64{originX - dirX*koef, originY - dirY*koef}
	}
	if v1 := edge.Vertex1(); v1 != nil {
		out[1] = [2]float64{v1.X, v1.Y}
	} else {
		out[1] = [2]float64{originX + dirX*koef, originY + dirY*koef}
	}
	return out
}

func diagramToEcharts(sites []site, diagram *voronoi.Diagram, side float64) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter)

	points := make([]opts.ScatterData, 0)
	for _, s := range sites {
		if s.isSegment {
			continue
		}
		points = append(points, opts.ScatterData{
			Value: []float64{float64(s.a.X), float64(s.a.Y)},
		})
	}
	scatter.AddSeries("Sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	addLine := func(name string, a, b [2]float64, width float32) {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)
		line.AddSeries(name, []opts.LineData{
			{Value: []float64{a[0], a[1]}},
			{Value: []float64{b[0], b[1]}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: width,
			}),
		)
		scatter.Overlap(line)
	}

	for _, s := range sites {
		if s.isSegment {
			addLine("Segments",
				[2]float64{float64(s.a.X), float64(s.a.Y)},
				[2]float64{float64(s.b.X), float64(s.b.Y)}, 4)
		}
	}

	drawn := make(map[*voronoi.Edge]bool)
	for _, edge := range diagram.Edges() {
		if drawn[edge] || drawn[edge.Twin()] || !edge.IsPrimary() {
			continue
		}
		drawn[edge] = true

		var ends [2][2]float64
		if edge.IsFinite() {
			v0, v1 := edge.Vertex0(), edge.Vertex1()
			ends = [2][2]float64{{v0.X, v0.Y}, {v1.X, v1.Y}}
		} else {
			ends = clipInfiniteEdge(edge, sites, side)
		}
		addLine("Edges", ends[0], ends[1], 2)
	}

	return scatter
}

func diagramHandler(w http.ResponseWriter, r *http.Request) {
	width := 1000
	height := 1000
	numPoints := 12
	numSegments := 3
	var isRandom bool

	if r.Method == http.MethodPost {
		r.ParseForm()
		width, _ = strconv.Atoi(r.FormValue("width"))
		height, _ = strconv.Atoi(r.FormValue("height"))
		numPoints, _ = strconv.Atoi(r.FormValue("points"))
		numSegments, _ = strconv.Atoi(r.FormValue("segments"))
		isRandom = r.FormValue("random") == "true"
	}

	segments := generateBarSegments(numSegments, width, height)

	var points []voronoi.Point
	if isRandom {
		points = generateRandPoints(numPoints, width, height)
	} else {
		points = generateGridPoints(numPoints, width, height)
	}

	log := logger.New()
	defer log.ClearLogs()

	builder := voronoi.NewBuilder(voronoi.WithLogger(log))
	sites := make([]site, 0, len(points)+len(segments))

	for _, p := range points {
		skip := false
		for _, s := range segments {
			if onSegment(p, s) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		if _, err := builder.AddPoint(p.X, p.Y); err != nil {
			log.Error("add point failed", zap.Error(err))
			continue
		}
		sites = append(sites, site{a: p})
	}
	for _, s := range segments {
		if _, err := builder.AddSegment(s[0].X, s[0].Y, s[1].X, s[1].Y); err != nil {
			log.Error("add segment failed", zap.Error(err))
			continue
		}
		sites = append(sites, site{isSegment: true, a: s[0], b: s[1]})
	}

	diagram, err := builder.Construct()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	scatter := diagramToEcharts(sites, diagram, float64(width))

	fmt.Fprintln(w, static.Part1)

	if err := scatter.Render(w); err != nil {
		fmt.Println("diagram render failed:", err)
	}

	fmt.Fprintln(w, static.Part2)

	for _, entry := range log.Logs {
		fmt.Fprintln(w, entry)
	}

	fmt.Fprintln(w, static.Part3)
}

func main() {
	http.HandleFunc("/", diagramHandler)
	fmt.Println("Listening on http://localhost:8080")
	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Println("Err ListenAndServe", err)
	}
}
