package cfl

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//ReadNpy reads a two dimensional data matrix (rows are observations) from a npy file.
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "opening '%s'", fileName)
	}
	defer func() { grip.Warning(message.WrapError(f.Close(), message.Fields{"file": fileName})) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading npy header of '%s'", fileName)
	}

	denseMat := &mat.Dense{}
	if err = r.Read(denseMat); err != nil {
		return nil, errors.Wrapf(err, "reading npy data of '%s'", fileName)
	}

	h, w := denseMat.Dims()
	grip.Debug(message.Fields{
		"message": "data matrix loaded",
		"file":    fileName,
		"rows":    h,
		"cols":    w,
	})
	return denseMat, nil
}

//WriteNpy stores a matrix or a float slice as a npy file.
func WriteNpy(fileName string, value interface{}) error {
	dst, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "creating '%s'", fileName)
	}
	if err = npyio.Write(dst, value); err != nil {
		_ = dst.Close()
		return errors.Wrapf(err, "writing npy data to '%s'", fileName)
	}
	return errors.Wrapf(dst.Close(), "closing '%s'", fileName)
}
