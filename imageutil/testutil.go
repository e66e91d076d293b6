package imageutil

// Black and White are the module colours used by the synthetic images.
var (
	Black = RGB{R: 0, G: 0, B: 0}
	White = RGB{R: 255, G: 255, B: 255}
)

// CreateCheckerboardImage creates a checkerboard of squareSize pixel
// squares, white in the top-left corner.
func CreateCheckerboardImage(width, height, squareSize int) *Image {
	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, White)
			} else {
				img.SetRGB(x, y, Black)
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *Image {
	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateModuleImage paints rows[y][x] as module×module squares, dark
// modules in dark and the rest in light. It mimics a barcode writer's
// output for tests.
func CreateModuleImage(rows [][]bool, module int, dark, light RGB) *Image {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	img := NewImage(width*module, height*module)
	for my, row := range rows {
		for mx, on := range row {
			c := light
			if on {
				c = dark
			}
			for y := my * module; y < (my+1)*module; y++ {
				for x := mx * module; x < (mx+1)*module; x++ {
					img.SetRGB(x, y, c)
				}
			}
		}
	}
	return img
}
