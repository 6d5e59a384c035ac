package wizard

// Actions are pure: the input state is never mutated. Slice and map fields
// are copied before modification so callers may keep old snapshots.

// ToggleClient adds or removes a client from the selection by id. Newly
// added clients always default to the plaintiff side; the engine never
// auto-assigns defendant, a deliberate simplification carried over from the
// product behavior. SetClientSide changes the side explicitly.
func ToggleClient(s State, c Client) State {
	for i, sel := range s.SelectedClients {
		if sel.ID == c.ID {
			s.SelectedClients = removeClientAt(s.SelectedClients, i)
			s.PartySides = removeSide(s.PartySides, c.ID)
			return s
		}
	}

	clients := make([]Client, len(s.SelectedClients), len(s.SelectedClients)+1)
	copy(clients, s.SelectedClients)
	s.SelectedClients = append(clients, c)

	sides := make(map[string]Side, len(s.PartySides)+1)
	for id, side := range s.PartySides {
		sides[id] = side
	}
	sides[c.ID] = SidePlaintiff
	s.PartySides = sides
	return s
}

// SetClientSide tags a selected client as plaintiff or defendant. A no-op
// for clients that are not currently selected.
func SetClientSide(s State, clientID string, side Side) State {
	if _, ok := s.PartySides[clientID]; !ok {
		return s
	}
	sides := make(map[string]Side, len(s.PartySides))
	for id, sd := range s.PartySides {
		sides[id] = sd
	}
	sides[clientID] = side
	s.PartySides = sides
	return s
}

// AddAdverseParty appends an opposing-party record. No uniqueness is
// enforced; duplicates are permitted.
func AddAdverseParty(s State, p AdverseParty) State {
	parties := make([]AdverseParty, len(s.AdverseParties), len(s.AdverseParties)+1)
	copy(parties, s.AdverseParties)
	s.AdverseParties = append(parties, p)
	return s
}

// RemoveAdverseParty deletes the record at index; out-of-range is a no-op.
func RemoveAdverseParty(s State, index int) State {
	if index < 0 || index >= len(s.AdverseParties) {
		return s
	}
	parties := make([]AdverseParty, 0, len(s.AdverseParties)-1)
	parties = append(parties, s.AdverseParties[:index]...)
	parties = append(parties, s.AdverseParties[index+1:]...)
	if len(parties) == 0 {
		parties = nil
	}
	s.AdverseParties = parties
	return s
}

// SetLegalArea selects the legal area and clears any chosen piece type: a
// piece type is only meaningful under the area it was chosen for.
func SetLegalArea(s State, area string) State {
	s.LegalArea = area
	s.PieceType = PieceType{}
	return s
}

// SetPieceType chooses the document kind. A no-op until a legal area is
// selected, preserving the area-scoping invariant.
func SetPieceType(s State, pt PieceType) State {
	if s.LegalArea == "" {
		return s
	}
	s.PieceType = pt
	return s
}

func SetFacts(s State, facts string) State {
	s.Facts = facts
	return s
}

func SetSpecificRequests(s State, requests string) State {
	s.SpecificRequests = requests
	return s
}

func SetProcessNumber(s State, v string) State {
	s.ProcessNumber = v
	return s
}

func SetCourtDivision(s State, v string) State {
	s.CourtDivision = v
	return s
}

func SetJurisdiction(s State, v string) State {
	s.Jurisdiction = v
	return s
}

func SetCauseValue(s State, v string) State {
	s.CauseValue = v
	return s
}

// ToggleTopic, ToggleThesis and ToggleJurisprudence implement set-toggle
// semantics: present removes, absent appends. First-insertion order is
// preserved because review screens show the first N entries as a truncated
// preview, making the order user-visible.

func ToggleTopic(s State, topic string) State {
	s.Topics = toggleString(s.Topics, topic)
	return s
}

func ToggleThesis(s State, thesis string) State {
	s.Theses = toggleString(s.Theses, thesis)
	return s
}

func ToggleJurisprudence(s State, jurisprudence string) State {
	s.Jurisprudences = toggleString(s.Jurisprudences, jurisprudence)
	return s
}

// SetSuggestions replaces the advisory AI suggestions wholesale; they are
// repopulated per analysis call, never merged.
func SetSuggestions(s State, theses, jurisprudences []string) State {
	s.AISuggestedTheses = copyStrings(theses)
	s.AISuggestedJurisprudences = copyStrings(jurisprudences)
	return s
}

// BeginGeneration marks the session as generating and resets the ephemeral
// attempt state. Returns ok=false without touching the state when a
// generation is already in flight: re-entrant attempts are no-ops.
func BeginGeneration(s State) (State, bool) {
	if s.IsGenerating {
		return s, false
	}
	s.IsGenerating = true
	s.Progress = 0
	s.Logs = nil
	s.GeneratedText = ""
	return s, true
}

// AppendLog records a human-readable progress message for the current attempt.
func AppendLog(s State, msg string) State {
	logs := make([]string, len(s.Logs), len(s.Logs)+1)
	copy(logs, s.Logs)
	s.Logs = append(logs, msg)
	return s
}

// SetProgress clamps and stores attempt progress.
func SetProgress(s State, progress int) State {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	s.Progress = progress
	return s
}

// FinishGeneration ends the attempt. A non-empty text is a success; an empty
// text leaves GeneratedText empty, which is how callers distinguish failure.
func FinishGeneration(s State, text string) State {
	s.IsGenerating = false
	if text != "" {
		s.GeneratedText = text
		s.Progress = 100
	} else {
		s.Progress = 0
	}
	return s
}

func toggleString(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			if len(list) == 1 {
				return nil
			}
			out := make([]string, 0, len(list)-1)
			out = append(out, list[:i]...)
			out = append(out, list[i+1:]...)
			return out
		}
	}
	out := make([]string, len(list), len(list)+1)
	copy(out, list)
	return append(out, v)
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func removeClientAt(clients []Client, i int) []Client {
	if len(clients) == 1 {
		return nil
	}
	out := make([]Client, 0, len(clients)-1)
	out = append(out, clients[:i]...)
	out = append(out, clients[i+1:]...)
	return out
}

func removeSide(sides map[string]Side, id string) map[string]Side {
	out := make(map[string]Side, len(sides))
	for k, v := range sides {
		if k != id {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
