// Package region defines the closed set of screen regions that can be
// toggled into virtual monitors.
package region

type Region string

const (
	SelectRegion Region = "select_region"
	FullScreen   Region = "full_screen"

	LeftHalf  Region = "left_half"
	RightHalf Region = "right_half"

	LeftThird   Region = "left_third"
	CenterThird Region = "center_third"
	RightThird  Region = "right_third"

	TopLeftQuarter     Region = "top_left_quarter"
	TopRightQuarter    Region = "top_right_quarter"
	BottomLeftQuarter  Region = "bottom_left_quarter"
	BottomRightQuarter Region = "bottom_right_quarter"

	TopLeftSixth      Region = "top_left_sixth"
	TopCenterSixth    Region = "top_center_sixth"
	TopRightSixth     Region = "top_right_sixth"
	BottomLeftSixth   Region = "bottom_left_sixth"
	BottomCenterSixth Region = "bottom_center_sixth"
	BottomRightSixth  Region = "bottom_right_sixth"
)

func (r Region) String() string {
	return string(r)
}

// Cell locates a grid region inside the partition for its part count, with
// Index counting row-major. SelectRegion and FullScreen have no cell.
type Cell struct {
	Parts int
	Index int
}

var cells = map[Region]Cell{
	LeftHalf:  {Parts: 2, Index: 0},
	RightHalf: {Parts: 2, Index: 1},

	LeftThird:   {Parts: 3, Index: 0},
	CenterThird: {Parts: 3, Index: 1},
	RightThird:  {Parts: 3, Index: 2},

	TopLeftQuarter:     {Parts: 4, Index: 0},
	TopRightQuarter:    {Parts: 4, Index: 1},
	BottomLeftQuarter:  {Parts: 4, Index: 2},
	BottomRightQuarter: {Parts: 4, Index: 3},

	TopLeftSixth:      {Parts: 6, Index: 0},
	TopCenterSixth:    {Parts: 6, Index: 1},
	TopRightSixth:     {Parts: 6, Index: 2},
	BottomLeftSixth:   {Parts: 6, Index: 3},
	BottomCenterSixth: {Parts: 6, Index: 4},
	BottomRightSixth:  {Parts: 6, Index: 5},
}

func (r Region) Cell() (Cell, bool) {
	cell, ok := cells[r]
	return cell, ok
}

// ForCell is the inverse of Cell.
func ForCell(parts, index int) (Region, bool) {
	for r, cell := range cells {
		if cell.Parts == parts && cell.Index == index {
			return r, true
		}
	}
	return "", false
}

var all = []Region{
	SelectRegion,
	FullScreen,
	LeftHalf,
	RightHalf,
	LeftThird,
	CenterThird,
	RightThird,
	TopLeftQuarter,
	TopRightQuarter,
	BottomLeftQuarter,
	BottomRightQuarter,
	TopLeftSixth,
	TopCenterSixth,
	TopRightSixth,
	BottomLeftSixth,
	BottomCenterSixth,
	BottomRightSixth,
}

// All returns every region in panel order.
func All() []Region {
	return all
}

// Parse matches a bare region name, e.g. from a virtual monitor name with
// its prefix stripped or from an API path.
func Parse(s string) (Region, bool) {
	r := Region(s)
	if _, ok := cells[r]; ok {
		return r, true
	}
	if r == SelectRegion || r == FullScreen {
		return r, true
	}
	return "", false
}
