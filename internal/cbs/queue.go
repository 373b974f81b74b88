package cbs

// openQueue orders CBS nodes by (cost+h ascending, id descending), per
// spec.md §3's CBS_Tree OPEN ordering.
type openQueue []*Node

func (q openQueue) Len() int { return len(q) }
func (q openQueue) Less(i, j int) bool {
	fi, fj := q[i].Cost+q[i].H, q[j].Cost+q[j].H
	if fi != fj {
		return fi < fj
	}
	return q[i].ID > q[j].ID
}
func (q openQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *openQueue) Push(x interface{}) { *q = append(*q, x.(*Node)) }
func (q *openQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// focalQueue orders CBS nodes by (conflicts_num ascending, cost
// ascending, id descending), per spec.md §3's CBS_Tree FOCAL ordering.
type focalQueue []*Node

func (q focalQueue) Len() int { return len(q) }
func (q focalQueue) Less(i, j int) bool {
	if q[i].ConflictsNum != q[j].ConflictsNum {
		return q[i].ConflictsNum < q[j].ConflictsNum
	}
	if q[i].Cost != q[j].Cost {
		return q[i].Cost < q[j].Cost
	}
	return q[i].ID > q[j].ID
}
func (q focalQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *focalQueue) Push(x interface{}) { *q = append(*q, x.(*Node)) }
func (q *focalQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}

// remove splices n out of the focal queue by linear scan (focal is
// small in practice — at most the handful of nodes within the
// suboptimality bound).
func (q *focalQueue) remove(n *Node) {
	old := *q
	for i, it := range old {
		if it == n {
			old[i] = old[len(old)-1]
			*q = old[:len(old)-1]
			return
		}
	}
}
