// Command surfdump extracts a pattern world and writes top-down PNG maps of
// it, one pair per voxel layer: the raw materials, and the exposure of
// upward-facing surfaces shaded by their corner occlusion. Quick way to eyeball
// extraction output without a GL context.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cedric-h/hypermine/internal/meshing"
	"github.com/cedric-h/hypermine/internal/world"
	"golang.org/x/image/draw"
)

func main() {
	var (
		radius  = flag.Int("radius", 2, "populated chunk radius around the origin")
		layer   = flag.Int("layer", -1, "voxel y layer to dump, -1 for all")
		scale   = flag.Int("scale", 8, "output pixels per voxel")
		outDir  = flag.String("out", "surfdump-out", "output directory")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	meshing.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	w := buildWorld(*radius)
	coords := meshCoords(*radius)
	tops := collectTopFaces(w, coords)

	layers := []int{*layer}
	if *layer < 0 {
		layers = layers[:0]
		for y := 0; y < world.ChunkSize; y++ {
			layers = append(layers, y)
		}
	}

	for _, y := range layers {
		mat := materialSlice(w, *radius, y)
		exp := exposureSlice(tops, *radius, y)
		writePNG(filepath.Join(*outDir, fmt.Sprintf("y%02d_materials.png", y)), upscale(mat, *scale))
		writePNG(filepath.Join(*outDir, fmt.Sprintf("y%02d_exposure.png", y)), upscale(exp, *scale))
	}

	fmt.Printf("surfdump: wrote %d images to %s\n", 2*len(layers), *outDir)
}

// buildWorld fills a flat layer of chunks around the origin with the test
// pattern.
func buildWorld(radius int) *world.World {
	w := world.New()
	var gen world.PatternGenerator
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			gen.Populate(w.Chunk(world.ChunkCoord{X: cx, Z: cz}, true))
		}
	}
	return w
}

func meshCoords(radius int) []world.ChunkCoord {
	coords := make([]world.ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			coords = append(coords, world.ChunkCoord{X: cx, Z: cz})
		}
	}
	return coords
}

// collectTopFaces extracts every chunk and indexes the upward faces by the
// world position of their owning voxel. One scratch buffer serves all chunks;
// the surfaces are consumed before the next extraction overwrites them.
func collectTopFaces(w *world.World, coords []world.ChunkCoord) map[world.Vec3i]meshing.Surface {
	dims := world.Cube(world.ChunkSize)
	var buf meshing.Buffers
	out := make(map[world.Vec3i]meshing.Surface)
	for _, coord := range coords {
		surfaces, _ := meshing.Extract(w.SamplerFor(coord), dims, 0, &buf)
		origin := coord.Origin()
		for _, s := range surfaces {
			if s.Dir != meshing.FaceTop {
				continue
			}
			out[origin.Add(s.Voxel)] = s
		}
	}
	return out
}

func materialColor(m world.Material) color.RGBA {
	switch m {
	case world.MaterialStone:
		return color.RGBA{140, 140, 148, 255}
	case world.MaterialSand:
		return color.RGBA{199, 181, 128, 255}
	case world.MaterialDirt:
		return color.RGBA{115, 82, 56, 255}
	default:
		return color.RGBA{18, 18, 24, 255}
	}
}

func materialSlice(w *world.World, radius, y int) *image.RGBA {
	side := (2*radius + 1) * world.ChunkSize
	lo := -radius * world.ChunkSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			m := w.At(world.Vec3i{X: lo + x, Y: y, Z: lo + z})
			img.SetRGBA(x, z, materialColor(m))
		}
	}
	return img
}

// exposureSlice shades voxels that expose an upward face at this layer by the
// sum of the face's corner occlusion levels: open faces bright, tucked-in
// faces dark.
func exposureSlice(tops map[world.Vec3i]meshing.Surface, radius, y int) *image.RGBA {
	side := (2*radius + 1) * world.ChunkSize
	lo := -radius * world.ChunkSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for z := 0; z < side; z++ {
		for x := 0; x < side; x++ {
			s, ok := tops[world.Vec3i{X: lo + x, Y: y, Z: lo + z}]
			if !ok {
				img.SetRGBA(x, z, color.RGBA{10, 10, 14, 255})
				continue
			}
			sum := 0
			for _, level := range s.Occlusion {
				sum += int(level)
			}
			g := uint8(80 + sum*14)
			img.SetRGBA(x, z, color.RGBA{g, g, g, 255})
		}
	}
	return img
}

func upscale(src *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}
