package listing

type DeltaKind int

const (
	DeltaPatch DeltaKind = iota + 1
	DeltaRemove
	DeltaRefetch
)

func (k DeltaKind) String() string {
	switch k {
	case DeltaPatch:
		return "patch"
	case DeltaRemove:
		return "remove"
	case DeltaRefetch:
		return "refetch"
	}
	return "none"
}

// Delta là thay đổi đã được máy chủ xác nhận, áp vào trang hiện tại qua Controller.Apply
type Delta[T Row] struct {
	Kind DeltaKind
	Row  T
	ID   int64
}

func Patch[T Row](row T) Delta[T] {
	return Delta[T]{Kind: DeltaPatch, Row: row, ID: row.RowID()}
}

func Remove[T Row](id int64) Delta[T] {
	return Delta[T]{Kind: DeltaRemove, ID: id}
}

func Refetch[T Row]() Delta[T] {
	return Delta[T]{Kind: DeltaRefetch}
}
