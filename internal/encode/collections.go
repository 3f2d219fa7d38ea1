package encode

import (
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/msgs"
)

// ROIArray copies region of interest results in source order.
func ROIArray(header msgs.Header, rois []frame.ROI) *msgs.ROIArray {
	out := make([]msgs.ROI, 0, len(rois))
	for _, roi := range rois {
		out = append(out, msgs.ROI{
			ID:            roi.ID,
			DistanceValue: roi.DistanceValue,
			ResultData: msgs.ROIResultData{
				DistanceSafe:  roi.Result.DistanceSafe,
				DistanceValid: roi.Result.DistanceValid,
				ResultSafe:    roi.Result.ResultSafe,
				ResultValid:   roi.Result.ResultValid,
				TaskResult:    roi.Result.TaskResult,
			},
			SafetyData: msgs.ROISafetyData{
				InvalidDueToInvalidPixels:              roi.Safety.InvalidDueToInvalidPixels,
				InvalidDueToVariance:                   roi.Safety.InvalidDueToVariance,
				InvalidDueToOverexposure:               roi.Safety.InvalidDueToOverexposure,
				InvalidDueToUnderexposure:              roi.Safety.InvalidDueToUnderexposure,
				InvalidDueToTemporalVariance:           roi.Safety.InvalidDueToTemporalVariance,
				InvalidDueToOutsideOfMeasurementRange:  roi.Safety.InvalidDueToOutsideOfMeasurementRange,
				InvalidDueToRetroReflectorInterference: roi.Safety.InvalidDueToRetroReflectorInterference,
				ContaminationError:                     roi.Safety.ContaminationError,
				QualityClass:                           roi.Safety.QualityClass,
				SlotActive:                             roi.Safety.SlotActive,
			},
		})
	}

	return &msgs.ROIArray{Header: header, ROIs: out}
}

// FieldInformationArray copies safety field results in source order.
func FieldInformationArray(header msgs.Header, fields []frame.FieldInfo) *msgs.FieldInformationArray {
	out := make([]msgs.FieldInformation, 0, len(fields))
	for _, f := range fields {
		out = append(out, msgs.FieldInformation{
			FieldID:     f.FieldID,
			FieldSetID:  f.FieldSetID,
			FieldActive: f.FieldActive,
			FieldResult: f.FieldResult,
			EvalMethod:  f.EvalMethod,
		})
	}

	return &msgs.FieldInformationArray{Header: header, Fields: out}
}
