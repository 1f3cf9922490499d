package descriptor

import (
	"slices"

	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/profile"
)

// PackRegions groups regions, in order, into descriptors of MaxRegions
// entries; only the last one may hold fewer. No regions yield no descriptors.
func PackRegions(regions []Region) []*LocalTimeOffset {
	var out []*LocalTimeOffset
	for start := 0; start < len(regions); start += MaxRegions {
		end := min(start+MaxRegions, len(regions))
		out = append(out, &LocalTimeOffset{Regions: slices.Clone(regions[start:end])})
	}

	return out
}

// UnpackRegions concatenates the regions of chunks in order.
func UnpackRegions(chunks []*LocalTimeOffset) []Region {
	var out []Region
	for _, c := range chunks {
		out = append(out, c.Regions...)
	}

	return out
}

// SplitRegions separates a descriptor list into the regions of its
// local_time_offset descriptors and every other descriptor, keeping the
// relative order of both. A local_time_offset descriptor that does not decode
// is kept in others unchanged.
func SplitRegions(ctx *profile.Context, list *List) (regions []Region, others List) {
	for _, d := range list.descs {
		if d.Tag == format.DIDLocalTimeOffset {
			var lto LocalTimeOffset
			err := lto.Deserialize(ctx, d)
			if err == nil {
				regions = append(regions, lto.Regions...)
				continue
			}
			ctx.Logger().Warn().Err(err).Int("size", len(d.Payload)).Msg("keeping undecodable local_time_offset_descriptor as is")
		}
		others.descs = append(others.descs, d)
	}

	return regions, others
}

// JoinRegions builds the wire descriptor list of a region sequence followed
// by other descriptors: the packed local_time_offset descriptors come first.
func JoinRegions(ctx *profile.Context, regions []Region, others *List) (List, error) {
	var out List
	for _, lto := range PackRegions(regions) {
		if err := out.AddTyped(ctx, lto); err != nil {
			return List{}, err
		}
	}
	if others != nil {
		out.AddList(others)
	}

	return out, nil
}
