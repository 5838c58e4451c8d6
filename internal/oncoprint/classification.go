package oncoprint

// Standard MAF variant classifications. These are the category labels the
// fixed display palette knows about; anything else is assigned a dynamic
// color at render time.
const (
	// Truncating
	ClassificationNonsense      = "Nonsense_Mutation"
	ClassificationFrameShiftDel = "Frame_Shift_Del"
	ClassificationFrameShiftIns = "Frame_Shift_Ins"
	ClassificationSpliceSite    = "Splice_Site"
	ClassificationNonstop       = "Nonstop_Mutation"
	ClassificationStartSite     = "Translation_Start_Site"

	// Non-truncating
	ClassificationMissense   = "Missense_Mutation"
	ClassificationInFrameDel = "In_Frame_Del"
	ClassificationInFrameIns = "In_Frame_Ins"
	ClassificationSilent     = "Silent"

	// ClassificationMultiHit is the synthetic category used when a single
	// gene/sample cell would otherwise hold three or more events.
	ClassificationMultiHit = "Multi_Hit"
)

// StandardClassifications lists the known categories in display order:
// truncating first, then non-truncating, then the multi-hit marker.
var StandardClassifications = []string{
	ClassificationNonsense,
	ClassificationFrameShiftDel,
	ClassificationFrameShiftIns,
	ClassificationSpliceSite,
	ClassificationNonstop,
	ClassificationStartSite,
	ClassificationMissense,
	ClassificationInFrameDel,
	ClassificationInFrameIns,
	ClassificationSilent,
	ClassificationMultiHit,
}
