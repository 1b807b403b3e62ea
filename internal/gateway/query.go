package gateway

// Query is the request state of one view. It keeps the last applied result
// while a newer request is pending and ignores results of superseded
// requests.
type Query struct {
	gen     uint64
	key     Key
	data    Result
	hasData bool
	loading bool
	err     error
}

// Begin starts a request for key and returns its generation. The previous
// result stays visible until the new one resolves.
func (q *Query) Begin(key Key) uint64 {
	q.gen++
	q.key = key
	q.loading = true
	return q.gen
}

// Resolve applies the outcome of the request started with gen. It returns
// false, and changes nothing, when a newer request has been started since.
func (q *Query) Resolve(gen uint64, res Result, err error) bool {
	if gen != q.gen {
		return false
	}
	q.loading = false
	if err != nil {
		q.err = err
		return true
	}
	q.err = nil
	q.data = res
	q.hasData = true
	return true
}

func (q *Query) Key() Key { return q.key }

// Data returns the last successfully applied result.
func (q *Query) Data() (Result, bool) { return q.data, q.hasData }

func (q *Query) Loading() bool { return q.loading }

// Stale reports whether previous data is on display while a request for the
// current key is still pending.
func (q *Query) Stale() bool { return q.loading && q.hasData }

// Err is the failure of the latest resolved request, cleared by the next
// success.
func (q *Query) Err() error { return q.err }
