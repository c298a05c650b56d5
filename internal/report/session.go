package report

// A session is the set of order lines belonging to one customer checkout,
// identified by the payment reference or, while unpaid, by table.
type session struct {
	key           string
	productLines  []Line
	discountLines []Line
}

func sessionKey(line Line) string {
	if line.PaymentID != "" {
		return line.PaymentID
	}
	return "table_" + line.TableID
}

// groupSessions partitions lines into sessions, splitting discount lines
// from product lines. Sessions come back in first-seen order so repeated
// runs over the same input produce identical output.
func groupSessions(lines []Line) []session {
	index := make(map[string]int, len(lines))
	sessions := make([]session, 0, len(lines))

	for _, line := range lines {
		key := sessionKey(line)
		pos, ok := index[key]
		if !ok {
			pos = len(sessions)
			index[key] = pos
			sessions = append(sessions, session{key: key})
		}
		if line.IsDiscount {
			sessions[pos].discountLines = append(sessions[pos].discountLines, line)
		} else {
			sessions[pos].productLines = append(sessions[pos].productLines, line)
		}
	}

	return sessions
}
