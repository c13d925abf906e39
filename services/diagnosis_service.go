package services

import (
    "bytes"
    "fmt"
    "image"
    "image/color"
    "math"

    _ "image/gif"
    _ "image/jpeg"
    _ "image/png"
)

// DiagnosisService is a placeholder image classifier. It always reports
// a possible infection and urges a doctor visit, never a healthy
// verdict. Severity comes from simple brightness and contrast cues
// until a real model replaces it.
type DiagnosisService struct{}

func NewDiagnosisService() *DiagnosisService {
    return &DiagnosisService{}
}

var diagnosisMessages = map[string]map[string]string{
    "en": {
        "serious":  "⚠️ URGENT: This appears to show signs of a serious infection. Please consult a healthcare provider immediately.",
        "moderate": "⚠️ WARNING: The image shows signs of an infection that requires medical attention. Please consult a doctor soon.",
        "mild":     "⚠️ ATTENTION: I can see signs of a mild infection in this image. Please consult a healthcare provider for proper diagnosis and treatment.",
        "dark":     "⚠️ The image is too dark to analyze properly, but any skin condition requires medical attention. Please consult a doctor.",
        "default":  "⚠️ I detect potential signs of infection. Please consult a healthcare professional for proper diagnosis and treatment.",
    },
    "hi": {
        "serious":  "⚠️ अत्यंत जरूरी: इसमें गंभीर संक्रमण के लक्षण दिखाई देते हैं। कृपया तुरंत डॉक्टर से मिलें।",
        "moderate": "⚠️ चेतावनी: छवि में ऐसे संक्रमण के संकेत हैं जिसके लिए चिकित्सा की आवश्यकता है। कृपया जल्द ही डॉक्टर से परामर्श करें।",
        "mild":     "⚠️ ध्यान दें: मुझे इस छवि में हल्के संक्रमण के लक्षण दिखाई दे रहे हैं। कृपया उचित निदान और उपचार के लिए डॉक्टर से परामर्श करें।",
        "dark":     "⚠️ छवि विश्लेषण के लिए बहुत अंधेरी है, लेकिन किसी भी त्वचा की स्थिति के लिए चिकित्सा देखभाल की आवश्यकता होती है। कृपया डॉक्टर से परामर्श करें।",
        "default":  "⚠️ मैं संक्रमण के संभावित संकेत देख रहा हूँ। कृपया उचित निदान और उपचार के लिए डॉक्टर से परामर्श करें।",
    },
    "bn": {
        "serious":  "⚠️ জরুরী: এটি একটি গুরুতর সংক্রমণের লক্ষণ দেখাচ্ছে। অবিলম্বে একজন স্বাস্থ্যসেবা প্রদানকারীর সাথে পরামর্শ করুন।",
        "moderate": "⚠️ সতর্কতা: ছবিটি এমন একটি সংক্রমণের লক্ষণ দেখায় যার জন্য চিকিৎসা প্রয়োজন। অনুগ্রহ করে শীঘ্রই একজন ডাক্তারের সাথে পরামর্শ করুন।",
        "mild":     "⚠️ মনোযোগ: আমি এই ছবিতে হালকা সংক্রমণের লক্ষণ দেখতে পাচ্ছি। সঠিক রোগ নির্ণয় ও চিকিৎসার জন্য একজন স্বাস্থ্যসেবা প্রদানকারীর সাথে পরামর্শ করুন।",
        "dark":     "⚠️ ছবিটি বিশ্লেষণ করার জন্য খুব অন্ধকার, তবে যেকোনো ত্বকের অবস্থার জন্য চিকিৎসা প্রয়োজন। অনুগ্রহ করে একজন ডাক্তারের সাথে পরামর্শ করুন।",
        "default":  "⚠️ আমি সংক্রমণের সম্ভাব্য লক্ষণ দেখছি। সঠিক রোগ নির্ণয় ও চিকিৎসার জন্য একজন স্বাস্থ্যসেবা পেশাদারের সাথে পরামর্শ করুন।",
    },
    "te": {
        "serious":  "⚠️ అత్యవసరం: ఇది తీవ్రమైన సంక్రమణ సంకేతాలను చూపుతుంది. వెంటనే వైద్యులను సంప్రదించండి.",
        "moderate": "⚠️ హెచ్చరిక: చిత్రం వైద్య చికిత్స అవసరమైన సంక్రమణ సంకేతాలను చూపుతుంది. త్వరలో వైద్యుడిని సంప్రదించండి.",
        "mild":     "⚠️ శ్రద్ధ: ఈ చిత్రంలో నేను తేలికపాటి సంక్రమణ సంకేతాలను చూడగలను. సరైన నిర్ధారణ మరియు చికిత్స కోసం వైద్యుడిని సంప్రదించండి.",
        "dark":     "⚠️ చిత్రం సరిగ్గా విశ్లేషించడానికి చాలా చీకటిగా ఉంది, కానీ ఏదైనా చర్మ పరిస్థితికి వైద్య సంరక్షణ అవసరం. దయచేసి వైద్యుడిని సంప్రదించండి.",
        "default":  "⚠️ నేను సంక్రమణకు సంభావ్య సంకేతాలను గుర్తిస్తున్నాను. సరైన నిర్ధారణ మరియు చికిత్స కోసం ఆరోగ్య నిపుణుడిని సంప్రదించండి.",
    },
    "ta": {
        "serious":  "⚠️ அவசரம்: இது கடுமையான தொற்றுநோயின் அறிகுறிகளைக் காட்டுகிறது. உடனடியாக மருத்துவரை அணுகவும்.",
        "moderate": "⚠️ எச்சரிக்கை: படம் மருத்துவ கவனம் தேவைப்படும் தொற்றுநோயின் அறிகுறிகளைக் காட்டுகிறது. விரைவில் ஒரு மருத்துவரை அணுகவும்.",
        "mild":     "⚠️ கவனம்: இந்த படத்தில் லேசான தொற்றின் அறிகுறிகளை நான் காண்கிறேன். சரியான கண்டறிதல் மற்றும் சிகிச்சைக்காக மருத்துவரை அணுகவும்.",
        "dark":     "⚠️ படத்தை சரியாக பகுப்பாய்வு செய்ய முடியாத அளவுக்கு இருட்டாக உள்ளது, ஆனால் எந்த தோல் நிலைக்கும் மருத்துவ கவனிப்பு தேவை. தயவுசெய்து மருத்துவரை அணுகவும்.",
        "default":  "⚠️ தொற்றுநோயின் சாத்தியமான அறிகுறிகளை நான் கண்டறிகிறேன். சரியான கண்டறிதல் மற்றும் சிகிச்சைக்காக மருத்துவ நிபுணரை அணுகவும்.",
    },
}

// Diagnose analyzes an uploaded image and returns advisory feedback in
// the requested language. Undecodable images get the generic message.
func (s *DiagnosisService) Diagnose(imageBytes []byte, language string) string {
    messages, ok := diagnosisMessages[language]
    if !ok {
        messages = diagnosisMessages["en"]
    }

    brightness, contrast, err := analyzeImage(imageBytes)
    if err != nil {
        return messages["default"]
    }
    return messages[classifySeverity(brightness, contrast)]
}

// classifySeverity maps grayscale statistics to a severity bucket.
// Very dark frames cannot be analyzed; high contrast reads as
// discoloration or inflammation.
func classifySeverity(brightness, contrast float64) string {
    if brightness < 30 {
        return "dark"
    }
    switch {
    case contrast > 50:
        return "serious"
    case contrast > 30:
        return "moderate"
    default:
        return "mild"
    }
}

// analyzeImage returns the mean and standard deviation of the image's
// grayscale pixel values
func analyzeImage(imageBytes []byte) (brightness, contrast float64, err error) {
    img, _, err := image.Decode(bytes.NewReader(imageBytes))
    if err != nil {
        return 0, 0, fmt.Errorf("failed to decode image: %w", err)
    }

    bounds := img.Bounds()
    total := bounds.Dx() * bounds.Dy()
    if total == 0 {
        return 0, 0, fmt.Errorf("image has no pixels")
    }

    var sum, sumSquares float64
    for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
        for x := bounds.Min.X; x < bounds.Max.X; x++ {
            gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
            v := float64(gray.Y)
            sum += v
            sumSquares += v * v
        }
    }

    mean := sum / float64(total)
    variance := sumSquares/float64(total) - mean*mean
    if variance < 0 {
        variance = 0
    }
    return mean, math.Sqrt(variance), nil
}
