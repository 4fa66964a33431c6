package imgconv

import (
	"image"
	"image/color"
	"testing"
)

func TestToMatBGRASwapsChannels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 200})
	img.SetRGBA(2, 1, color.RGBA{R: 250, G: 120, B: 5, A: 255})

	mat, err := ToMatBGRA(img)
	if err != nil {
		t.Fatal(err)
	}
	defer mat.Close()

	if mat.Rows() != 2 || mat.Cols() != 3 || mat.Channels() != 4 {
		t.Fatalf("mat shape = %dx%dx%d", mat.Rows(), mat.Cols(), mat.Channels())
	}

	v := mat.GetVecbAt(0, 0)
	if v[0] != 30 || v[1] != 20 || v[2] != 10 || v[3] != 200 {
		t.Errorf("pixel (0,0) = %v, want BGRA {30 20 10 200}", v)
	}
	v = mat.GetVecbAt(1, 2)
	if v[0] != 5 || v[1] != 120 || v[2] != 250 || v[3] != 255 {
		t.Errorf("pixel (2,1) = %v, want BGRA {5 120 250 255}", v)
	}
}

func TestToMatBGRAGenericImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(1, 1, color.Gray{Y: 99})

	mat, err := ToMatBGRA(img)
	if err != nil {
		t.Fatal(err)
	}
	defer mat.Close()

	v := mat.GetVecbAt(1, 1)
	if v[0] != 99 || v[1] != 99 || v[2] != 99 || v[3] != 255 {
		t.Errorf("gray pixel = %v, want {99 99 99 255}", v)
	}
}

func TestToMatBGRARejectsNil(t *testing.T) {
	if _, err := ToMatBGRA(nil); err == nil {
		t.Fatal("nil image must error")
	}
}

func TestToMatBGR(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	mat, err := ToMatBGR(img)
	if err != nil {
		t.Fatal(err)
	}
	defer mat.Close()

	if mat.Channels() != 3 {
		t.Fatalf("channels = %d, want 3", mat.Channels())
	}
	v := mat.GetVecbAt(1, 0)
	if v[0] != 3 || v[1] != 2 || v[2] != 1 {
		t.Errorf("pixel = %v, want BGR {3 2 1}", v)
	}
}
