package resolver

import (
	"net/url"
	"strconv"
)

// Query parameter names. The long forms are the original wire protocol; the
// short aliases came later. Both are accepted, the short form wins when both
// are present and is the only form produced for new links.
const (
	paramChannel      = "channel"
	paramChannelShort = "c"
	paramMatch        = "match"
	paramMatchShort   = "m"
	paramOpt          = "opt"
	paramOptShort     = "o"
	paramEvent        = "event"
	paramEventShort   = "e"
	paramVirtual      = "virtualChannel"
	paramVirtualShort = "vc"
)

// Params are the decoded addressing parameters of a player-page URL.
type Params struct {
	Channel        string
	Match          string
	Opt            string
	Event          string
	VirtualChannel string
}

func ParamsFromQuery(q url.Values) Params {
	pick := func(short, long string) string {
		if v := q.Get(short); v != "" {
			return v
		}
		return q.Get(long)
	}
	return Params{
		Channel:        pick(paramChannelShort, paramChannel),
		Match:          pick(paramMatchShort, paramMatch),
		Opt:            pick(paramOptShort, paramOpt),
		Event:          pick(paramEventShort, paramEvent),
		VirtualChannel: pick(paramVirtualShort, paramVirtual),
	}
}

// Query serializes the parameters in the preferred short form.
func (p Params) Query() url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set(paramChannelShort, p.Channel)
	set(paramMatchShort, p.Match)
	set(paramOptShort, p.Opt)
	set(paramEventShort, p.Event)
	set(paramVirtualShort, p.VirtualChannel)
	return q
}

// optIndex parses the opt parameter; anything non-numeric means "first
// option". Negative values clamp later with everything else.
func (p Params) optIndex() (int, bool) {
	if p.Opt == "" {
		return 0, false
	}
	n, err := strconv.Atoi(p.Opt)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SyncOptQuery rewrites the opt parameter of an existing query for a history
// replace after the user picks another option, migrating any legacy long form
// to the short alias.
func SyncOptQuery(q url.Values, index int) url.Values {
	out := url.Values{}
	for k, vs := range q {
		if k == paramOpt || k == paramOptShort {
			continue
		}
		out[k] = append([]string(nil), vs...)
	}
	out.Set(paramOptShort, strconv.Itoa(index))
	return out
}
