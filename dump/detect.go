package dump

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func (e srcEncoding) String() string {
	switch e {
	case encUTF8:
		return "utf8"
	case encUTF16BigEndian:
		return "utf16be"
	case encUTF16LittleEndian:
		return "utf16le"
	case encUTF32BigEndian:
		return "utf32be"
	case encUTF32LittleEndian:
		return "utf32le"
	default:
		return "unknown"
	}
}

// feed files are recognized by extension first and content second
var (
	feedExtensions = []string{".xml", ".onx", ".onix"}
	onixRoot       = regexp.MustCompile(`<ONIX[Mm]essage[\s>/]`)
	onixType       = filetype.NewType("onix", "application/xml")
)

// how much of the file is looked at for detection
const headSize = 4096

func init() {
	filetype.AddMatcher(onixType, onixMatcher)
}

func onixMatcher(buf []byte) bool {
	head := buf
	if enc := detectUTF(buf); enc != encUnknown {
		// truncated head may end in the middle of a character, whatever was
		// decoded is enough
		head, _ = io.ReadAll(selectReader(bytes.NewReader(buf), enc))
	}
	return onixRoot.Match(head)
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks for byte order mark, 32 bit marks are checked first since
// UTF-32LE mark starts with UTF-16LE one.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 without byte order mark. Feeds
// with no mark are passed as is, XML declaration takes care of them.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	default:
		// this should never happen
		panic(fmt.Sprintf("unexpected source encoding %d", enc))
	}
}

func hasFeedExtension(name string) bool {
	return slices.Contains(feedExtensions, strings.ToLower(filepath.Ext(name)))
}

func readHead(r io.Reader) ([]byte, error) {
	buf := make([]byte, headSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}

func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

func isFeed(r io.Reader) (bool, srcEncoding, error) {
	head, err := readHead(r)
	if err != nil {
		return false, encUnknown, err
	}
	if !filetype.Is(head, onixType.Extension) {
		return false, encUnknown, nil
	}
	return true, detectUTF(head), nil
}

func isFeedFile(path string) (bool, srcEncoding, error) {
	if !hasFeedExtension(path) {
		return false, encUnknown, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, encUnknown, err
	}
	defer f.Close()
	return isFeed(f)
}

func isFeedInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !hasFeedExtension(f.Name) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()
	return isFeed(r)
}
