package builder

import (
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// writeZip packs files, given relative to root, into a zip archive at path.
func writeZip(path, root string, files []string) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create archive")
	}
	defer func() {
		f.Close()
		if retErr != nil {
			_ = os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	for _, rel := range files {
		if err := addZipFile(zw, root, rel); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "failed to finish archive")
	}
	return f.Close()
}

func addZipFile(zw *zip.Writer, root, rel string) error {
	src := filepath.Join(root, rel)

	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return errors.Wrapf(err, "failed to add %s to archive", rel)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
