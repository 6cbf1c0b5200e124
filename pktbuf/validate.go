package pktbuf

// IsInvalidVarPktlen reports whether skb (data or parity) has a
// length that disagrees with its transmission group's packet length while
// OPT_VAR_PKTLEN is not set, i.e. a TG that is supposed to be
// fixed-length isn't. firstOfTG is the slot currently installed at the
// TG's opening sequence, or nil if that slot is empty (in which case
// the TG cannot be validated and is treated as invalid). Grounded on
// rxwi.c's pgm_rxw_is_invalid_var_pktlen.
func IsInvalidVarPktlen(isFECAvailable bool, skb *SKB, isFirstOfTG bool, firstOfTG *SKB) bool {
	if !isFECAvailable {
		return false
	}
	if skb.HasVarPktlen() {
		return false
	}
	if isFirstOfTG {
		return false
	}
	if firstOfTG == nil {
		return true // transmission group unrecoverable
	}
	return firstOfTG.Len() != skb.Len()
}

// hasPayloadOp reports whether skb carries header fields that expand
// the parity-coded region beyond raw payload bytes: a fragment option,
// or (in the original wire format) encoded options more generally.
func hasPayloadOp(skb *SKB) bool {
	return skb.HasFragmentOption()
}

// IsInvalidPayloadOp reports whether skb's payload-option shape (does
// it carry OPT_FRAGMENT or not) disagrees with the rest of its
// transmission group, which would make FEC reconstruction of the
// option headers ambiguous. Grounded on rxwi.c's
// pgm_rxw_is_invalid_payload_op.
func IsInvalidPayloadOp(isFECAvailable bool, skb *SKB, isFirstOfTG bool, firstOfTG *SKB) bool {
	if !isFECAvailable {
		return false
	}
	if isFirstOfTG {
		return false
	}
	if firstOfTG == nil {
		return true
	}
	return hasPayloadOp(firstOfTG) != hasPayloadOp(skb)
}
