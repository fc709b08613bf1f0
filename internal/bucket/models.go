package bucket

import "strings"

// DataClass identifies one of the four dataset subtrees.
type DataClass int

const (
	ClassData DataClass = iota
	ClassProcessing
	ClassResults
	ClassMask
)

var classDirs = map[DataClass]string{
	ClassData:       "Data",
	ClassProcessing: "Processing",
	ClassResults:    "Results",
	ClassMask:       "Mask",
}

// Dir returns the directory name for the dataclass under the dataset root.
func (c DataClass) Dir() string {
	return classDirs[c]
}

func (c DataClass) String() string {
	switch c {
	case ClassData:
		return "data"
	case ClassProcessing:
		return "processing"
	case ClassResults:
		return "results"
	case ClassMask:
		return "mask"
	default:
		return "unknown"
	}
}

// Classes lists all dataclasses in tree order.
func Classes() []DataClass {
	return []DataClass{ClassData, ClassProcessing, ClassResults, ClassMask}
}

// Entry is one indexed file inside the dataset tree.
//
// The meaning of Step depends on the dataclass: a datatype directory for
// ClassData, a step directory for the other classes. Pipeline is empty for
// ClassData and ClassMask entries.
type Entry struct {
	ID       int64
	Class    DataClass
	Pipeline string
	Step     string
	Subject  string
	Filename string
	Ext      string
	RelPath  string
}

// Filter restricts a Query. Zero-valued fields do not constrain the result.
// Steps, Reports, and Datatypes all address the Step segment; they exist as
// separate fields so a caller states which category it is querying.
type Filter struct {
	Pipeline  string
	Steps     string
	Reports   string
	Datatypes string
	Ext       string
	Regex     string
}

func (f Filter) stepValue() string {
	for _, v := range []string{f.Steps, f.Reports, f.Datatypes} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// splitExt returns the extension after the first dot so compound suffixes
// such as "nii.gz" stay intact.
func splitExt(filename string) string {
	if idx := strings.IndexByte(filename, '.'); idx >= 0 && idx+1 < len(filename) {
		return filename[idx+1:]
	}
	return ""
}
